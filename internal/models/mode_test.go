package models_test

import (
	"testing"

	"github.com/siddug/sag/internal/models"
)

// TestParseMode_ValidStrings tests parsing of all legacy mode forms
func TestParseMode_ValidStrings(t *testing.T) {
	tests := []struct {
		input string
		want  models.Mode
	}{
		{"signup", models.Signup()},
		{"game", models.GamePhase()},
		{"question-1", models.Question(1)},
		{"question-3", models.Question(3)},
		{"question-3-vote", models.VotePhase(3)},
		{"question-12-result", models.ResultPhase(12)},
		{"finished", models.Finished()},
	}

	for _, tt := range tests {
		got, err := models.ParseMode(tt.input)
		if err != nil {
			t.Errorf("ParseMode(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

// TestParseMode_InvalidStrings tests rejection of malformed modes
func TestParseMode_InvalidStrings(t *testing.T) {
	inputs := []string{
		"",
		"lobby",
		"question-",
		"question-0",
		"question--1",
		"question-abc",
		"question-3-results",
		"Signup",
	}

	for _, input := range inputs {
		if _, err := models.ParseMode(input); err == nil {
			t.Errorf("ParseMode(%q) expected error, got nil", input)
		}
	}
}

// TestMode_String tests that String emits the exact legacy wire form
func TestMode_String(t *testing.T) {
	tests := []struct {
		mode models.Mode
		want string
	}{
		{models.Signup(), "signup"},
		{models.GamePhase(), "game"},
		{models.Question(2), "question-2"},
		{models.VotePhase(2), "question-2-vote"},
		{models.ResultPhase(7), "question-7-result"},
		{models.Finished(), "finished"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// TestParseMode_RoundTrip tests that parsing a mode's string yields the same mode
func TestParseMode_RoundTrip(t *testing.T) {
	modes := []models.Mode{
		models.Signup(),
		models.GamePhase(),
		models.Question(1),
		models.VotePhase(5),
		models.ResultPhase(9),
		models.Finished(),
	}

	for _, m := range modes {
		parsed, err := models.ParseMode(m.String())
		if err != nil {
			t.Errorf("ParseMode(%q) returned error: %v", m.String(), err)
			continue
		}
		if parsed != m {
			t.Errorf("round trip of %+v gave %+v", m, parsed)
		}
	}
}

// TestMode_CanTransitionTo tests the round state machine
func TestMode_CanTransitionTo(t *testing.T) {
	const totalRounds = 3

	tests := []struct {
		name string
		from models.Mode
		to   models.Mode
		want bool
	}{
		{"signup to game", models.Signup(), models.GamePhase(), true},
		{"signup to question", models.Signup(), models.Question(1), false},
		{"signup to finished", models.Signup(), models.Finished(), false},
		{"game to question 1", models.GamePhase(), models.Question(1), true},
		{"game to question 2", models.GamePhase(), models.Question(2), false},
		{"game to signup", models.GamePhase(), models.Signup(), false},
		{"question to its vote", models.Question(2), models.VotePhase(2), true},
		{"question to other vote", models.Question(2), models.VotePhase(3), false},
		{"question restart", models.Question(2), models.Question(2), true},
		{"question skip ahead", models.Question(2), models.Question(3), false},
		{"vote to its result", models.VotePhase(2), models.ResultPhase(2), true},
		{"vote to other result", models.VotePhase(2), models.ResultPhase(1), false},
		{"vote to question", models.VotePhase(2), models.Question(2), false},
		{"result to next question", models.ResultPhase(2), models.Question(3), true},
		{"result restart same question", models.ResultPhase(2), models.Question(2), true},
		{"result skip question", models.ResultPhase(1), models.Question(3), false},
		{"result to finished early", models.ResultPhase(2), models.Finished(), false},
		{"last result to finished", models.ResultPhase(3), models.Finished(), true},
		{"last result past total", models.ResultPhase(3), models.Question(4), false},
		{"finished is terminal", models.Finished(), models.Signup(), false},
		{"finished to game", models.Finished(), models.GamePhase(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to, totalRounds); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// TestGame_TotalRounds tests that rounds come from the question pair count
func TestGame_TotalRounds(t *testing.T) {
	game := &models.Game{
		QuestionPairs: []models.QuestionPair{
			{RealQ: "a", FakeQ: "b"},
			{RealQ: "c", FakeQ: "d"},
		},
	}
	if got := game.TotalRounds(); got != 2 {
		t.Errorf("TotalRounds() = %d, want 2", got)
	}
}

// TestGame_HasTeam tests team lookup by name
func TestGame_HasTeam(t *testing.T) {
	game := &models.Game{
		Teams: []models.Team{{Name: "Red"}, {Name: "Blue"}},
	}
	if !game.HasTeam("Red") {
		t.Error("expected HasTeam(Red) to be true")
	}
	if game.HasTeam("Green") {
		t.Error("expected HasTeam(Green) to be false")
	}
}
