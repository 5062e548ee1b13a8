package handlers_test

import (
	"net/http"
	"testing"

	"github.com/siddug/sag/internal/handlers"
	"github.com/siddug/sag/internal/models"
)

func TestHandleCreateGame_Success(t *testing.T) {
	setup := newTestSetup(t)

	game := setup.createGame(t, 3)

	if game.ID == "" {
		t.Error("expected game id")
	}
	if game.CurrentMode != "signup" {
		t.Errorf("new game mode = %q, want signup", game.CurrentMode)
	}
	if game.CurrentQuestion != 0 {
		t.Errorf("new game current question = %d, want 0", game.CurrentQuestion)
	}
	for _, team := range game.Teams {
		if team.Score != 0 {
			t.Errorf("team %s score = %d, want 0", team.Name, team.Score)
		}
	}
}

func TestHandleCreateGame_Validation(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.adminRequest(t, http.MethodPost, "/api/imposters", handlers.GameCreateRequest{
		Name:  "One Team Only",
		Teams: []string{"Red"},
		QuestionPairs: []models.QuestionPair{
			{RealQ: "real", FakeQ: "fake"},
		},
	})
	assertErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestHandleCreateGame_InvalidJSON(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.adminRequest(t, http.MethodPost, "/api/imposters", "not an object")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid payload, got %d", rec.Code)
	}
}

func TestHandleListGames(t *testing.T) {
	setup := newTestSetup(t)
	setup.createGame(t, 1)
	setup.createGame(t, 2)

	rec := setup.adminRequest(t, http.MethodGet, "/api/imposters", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var games []models.Game
	decodeBody(t, rec, &games)
	if len(games) != 2 {
		t.Errorf("expected 2 games, got %d", len(games))
	}
}

func TestHandleGetGame_NeverCached(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)

	rec := setup.request(t, http.MethodGet, "/api/imposters/"+game.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}

	var state models.GameState
	decodeBody(t, rec, &state)
	if state.Game == nil || state.Game.ID != game.ID {
		t.Error("expected full game state in response")
	}
}

func TestHandleGetGame_NotFound(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.request(t, http.MethodGet, "/api/imposters/nope", nil)
	assertErrorCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}

func TestHandleUpdateMode(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)

	rec := setup.adminRequest(t, http.MethodPost, "/api/imposters/"+game.ID+"/mode", handlers.ModeUpdateRequest{Mode: "game"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = setup.request(t, http.MethodGet, "/api/imposters/"+game.ID, nil)
	var state models.GameState
	decodeBody(t, rec, &state)
	if state.Game.CurrentMode != "game" {
		t.Errorf("mode = %q, want game", state.Game.CurrentMode)
	}
}

func TestHandleUpdateMode_IllegalTransition(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)

	// A signup game cannot jump straight to finished
	rec := setup.adminRequest(t, http.MethodPost, "/api/imposters/"+game.ID+"/mode", handlers.ModeUpdateRequest{Mode: "finished"})
	assertErrorCode(t, rec, http.StatusConflict, "INVALID_STATE")
}

func TestHandleUpdateMode_UnknownMode(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)

	rec := setup.adminRequest(t, http.MethodPost, "/api/imposters/"+game.ID+"/mode", handlers.ModeUpdateRequest{Mode: "intermission"})
	assertErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestHandleStartQuestion(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 2)
	setup.joinGame(t, game.ID, "Alice", models.RoleParticipant)
	setup.joinGame(t, game.ID, "Bob", models.RoleParticipant)

	setup.startRound(t, game.ID, 1)

	rec := setup.request(t, http.MethodGet, "/api/imposters/"+game.ID, nil)
	var state models.GameState
	decodeBody(t, rec, &state)
	if state.Game.CurrentMode != "question-1" {
		t.Errorf("mode = %q, want question-1", state.Game.CurrentMode)
	}

	imposters := 0
	for _, p := range state.Participants {
		if p.HasFakeQuestion {
			imposters++
		}
	}
	if imposters != 1 {
		t.Errorf("imposters = %d, want exactly 1", imposters)
	}
}

func TestHandleStartQuestion_FromSignup(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)

	rec := setup.adminRequest(t, http.MethodPost, "/api/imposters/"+game.ID+"/start-question", handlers.StartQuestionRequest{QuestionNumber: 1})
	assertErrorCode(t, rec, http.StatusConflict, "INVALID_STATE")
}

func TestHandleUpdateScores(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)

	rec := setup.adminRequest(t, http.MethodPut, "/api/imposters/"+game.ID+"/scores", handlers.ScoresUpdateRequest{
		Teams: []models.Team{
			{Name: "Red", Score: 10},
			{Name: "Blue", Score: 20},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = setup.request(t, http.MethodGet, "/api/imposters/"+game.ID, nil)
	var state models.GameState
	decodeBody(t, rec, &state)
	for _, team := range state.Game.Teams {
		switch team.Name {
		case "Red":
			if team.Score != 10 {
				t.Errorf("Red score = %d, want 10", team.Score)
			}
		case "Blue":
			if team.Score != 20 {
				t.Errorf("Blue score = %d, want 20", team.Score)
			}
		}
	}
}

func TestHandleDeleteGame(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)

	rec := setup.adminRequest(t, http.MethodDelete, "/api/imposters/"+game.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = setup.request(t, http.MethodGet, "/api/imposters/"+game.ID, nil)
	assertErrorCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}
