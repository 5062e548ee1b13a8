package handlers_test

import (
	"net/http"
	"testing"

	"github.com/siddug/sag/internal/handlers"
	"github.com/siddug/sag/internal/models"
)

func createScoreTracker(t *testing.T, setup *testSetup) *models.ScoreGame {
	t.Helper()

	rec := setup.adminRequest(t, http.MethodPost, "/api/score-tracker", handlers.ScoreGameCreateRequest{
		Name: "Pub Quiz",
		Teams: []handlers.ScoreTeamCreateRequest{
			{Name: "Red", Members: []string{"Alice", "Bob"}},
			{Name: "Blue", Members: []string{"Carol"}},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to create score tracker: %d %s", rec.Code, rec.Body.String())
	}

	var game models.ScoreGame
	decodeBody(t, rec, &game)
	return &game
}

func TestHandleCreateScoreGame(t *testing.T) {
	setup := newTestSetup(t)

	game := createScoreTracker(t, setup)
	if game.ID == "" {
		t.Error("expected score game id")
	}
	if len(game.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(game.Teams))
	}
	for _, team := range game.Teams {
		if team.Score != 0 {
			t.Errorf("team %s score = %d, want 0", team.Name, team.Score)
		}
	}
}

func TestHandleCreateScoreGame_Validation(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.adminRequest(t, http.MethodPost, "/api/score-tracker", handlers.ScoreGameCreateRequest{
		Name: "No Teams",
	})
	assertErrorCode(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestHandleGetScoreGame_NeverCached(t *testing.T) {
	setup := newTestSetup(t)
	game := createScoreTracker(t, setup)

	// Display clients poll this without a session
	rec := setup.request(t, http.MethodGet, "/api/score-tracker/"+game.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestHandleAdjustScore(t *testing.T) {
	setup := newTestSetup(t)
	game := createScoreTracker(t, setup)

	rec := setup.adminRequest(t, http.MethodPost, "/api/score-tracker/"+game.ID+"/adjust", handlers.ScoreAdjustRequest{Team: "Red", Delta: 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = setup.adminRequest(t, http.MethodPost, "/api/score-tracker/"+game.ID+"/adjust", handlers.ScoreAdjustRequest{Team: "Red", Delta: -2})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp handlers.ScoreAdjustResponse
	decodeBody(t, rec, &resp)
	for _, team := range resp.Teams {
		switch team.Name {
		case "Red":
			if team.Score != 3 {
				t.Errorf("Red score = %d, want 3", team.Score)
			}
		case "Blue":
			if team.Score != 0 {
				t.Errorf("Blue score = %d, want 0", team.Score)
			}
		}
	}
}

func TestHandleAdjustScore_UnknownTeam(t *testing.T) {
	setup := newTestSetup(t)
	game := createScoreTracker(t, setup)

	rec := setup.adminRequest(t, http.MethodPost, "/api/score-tracker/"+game.ID+"/adjust", handlers.ScoreAdjustRequest{Team: "Green", Delta: 1})
	assertErrorCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}

func TestHandleDeleteScoreGame(t *testing.T) {
	setup := newTestSetup(t)
	game := createScoreTracker(t, setup)

	rec := setup.adminRequest(t, http.MethodDelete, "/api/score-tracker/"+game.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = setup.request(t, http.MethodGet, "/api/score-tracker/"+game.ID, nil)
	assertErrorCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}
