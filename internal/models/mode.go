package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ModeKind is the tagged phase of the Imposters round state machine
type ModeKind int

const (
	ModeSignup ModeKind = iota
	ModeGame
	ModeQuestion
	ModeVote
	ModeResult
	ModeFinished
)

// Mode is the game phase. Question is only meaningful for the
// Question/Vote/Result kinds. The wire form is the legacy string
// convention ("signup", "game", "question-3", "question-3-vote",
// "question-3-result", "finished") which existing clients parse by
// substring, so String must keep emitting exactly that shape.
type Mode struct {
	Kind     ModeKind
	Question int
}

// Convenience constructors

func Signup() Mode           { return Mode{Kind: ModeSignup} }
func GamePhase() Mode        { return Mode{Kind: ModeGame} }
func Question(n int) Mode    { return Mode{Kind: ModeQuestion, Question: n} }
func VotePhase(n int) Mode   { return Mode{Kind: ModeVote, Question: n} }
func ResultPhase(n int) Mode { return Mode{Kind: ModeResult, Question: n} }
func Finished() Mode         { return Mode{Kind: ModeFinished} }

// ParseMode parses the legacy mode string into a tagged Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "signup":
		return Signup(), nil
	case "game":
		return GamePhase(), nil
	case "finished":
		return Finished(), nil
	}

	rest, ok := strings.CutPrefix(s, "question-")
	if !ok {
		return Mode{}, fmt.Errorf("unknown mode %q", s)
	}

	kind := ModeQuestion
	if trimmed, found := strings.CutSuffix(rest, "-vote"); found {
		kind = ModeVote
		rest = trimmed
	} else if trimmed, found := strings.CutSuffix(rest, "-result"); found {
		kind = ModeResult
		rest = trimmed
	}

	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return Mode{}, fmt.Errorf("invalid question number in mode %q", s)
	}
	return Mode{Kind: kind, Question: n}, nil
}

// String emits the legacy wire form
func (m Mode) String() string {
	switch m.Kind {
	case ModeSignup:
		return "signup"
	case ModeGame:
		return "game"
	case ModeQuestion:
		return fmt.Sprintf("question-%d", m.Question)
	case ModeVote:
		return fmt.Sprintf("question-%d-vote", m.Question)
	case ModeResult:
		return fmt.Sprintf("question-%d-result", m.Question)
	case ModeFinished:
		return "finished"
	}
	return ""
}

// IsVote reports whether the mode is a voting sub-phase
func (m Mode) IsVote() bool { return m.Kind == ModeVote }

// IsResult reports whether the mode is a result sub-phase
func (m Mode) IsResult() bool { return m.Kind == ModeResult }

// IsTerminal reports whether the mode is the terminal phase
func (m Mode) IsTerminal() bool { return m.Kind == ModeFinished }

// CanTransitionTo validates the round state machine:
//
//	signup -> game
//	game -> question-1
//	question-N -> question-N-vote
//	question-N-vote -> question-N-result
//	question-N-result -> question-(N+1)   (N < totalRounds)
//	question-N-result -> finished         (N == totalRounds)
//
// A restart of the current question (question-N -> question-N, or
// question-N-result -> question-N) is also legal; startQuestion is the
// only action that performs it and resets round state as it does so.
func (m Mode) CanTransitionTo(next Mode, totalRounds int) bool {
	switch m.Kind {
	case ModeSignup:
		return next.Kind == ModeGame
	case ModeGame:
		return next.Kind == ModeQuestion && next.Question == 1
	case ModeQuestion:
		if next.Kind == ModeVote && next.Question == m.Question {
			return true
		}
		return next.Kind == ModeQuestion && next.Question == m.Question
	case ModeVote:
		return next.Kind == ModeResult && next.Question == m.Question
	case ModeResult:
		if next.Kind == ModeQuestion {
			return next.Question == m.Question+1 && m.Question < totalRounds ||
				next.Question == m.Question
		}
		return next.Kind == ModeFinished && m.Question == totalRounds
	case ModeFinished:
		return false
	}
	return false
}
