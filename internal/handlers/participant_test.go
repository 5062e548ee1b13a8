package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/siddug/sag/internal/handlers"
	"github.com/siddug/sag/internal/models"
	"github.com/siddug/sag/internal/services"
)

func TestHandleJoin_Success(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)

	rec := setup.request(t, http.MethodPost, "/api/imposters/"+game.ID+"/join", handlers.JoinRequest{
		Name: "Alice",
		Team: "Red",
		Role: models.RoleParticipant,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp handlers.JoinResponse
	decodeBody(t, rec, &resp)
	if resp.Participant == nil || resp.Participant.ID == "" {
		t.Fatal("expected participant in join response")
	}
	if !strings.Contains(resp.PollURL, "/api/participants/"+resp.Participant.ID) {
		t.Errorf("poll_url = %q, want it to point at the participant", resp.PollURL)
	}
}

func TestHandleJoin_NameTaken(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)
	setup.joinGame(t, game.ID, "Alice", models.RoleParticipant)

	rec := setup.request(t, http.MethodPost, "/api/imposters/"+game.ID+"/join", handlers.JoinRequest{
		Name: "Alice",
		Team: "Blue",
		Role: models.RoleVoter,
	})
	assertErrorCode(t, rec, http.StatusConflict, "NAME_TAKEN")
}

func TestHandleJoin_AfterSignupCloses(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)
	setup.joinGame(t, game.ID, "Alice", models.RoleParticipant)
	setup.joinGame(t, game.ID, "Bob", models.RoleParticipant)
	setup.startRound(t, game.ID, 1)

	rec := setup.request(t, http.MethodPost, "/api/imposters/"+game.ID+"/join", handlers.JoinRequest{
		Name: "Latecomer",
		Team: "Red",
		Role: models.RoleVoter,
	})
	assertErrorCode(t, rec, http.StatusConflict, "GAME_ALREADY_STARTED")
}

func TestHandleJoin_UnknownGame(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.request(t, http.MethodPost, "/api/imposters/nope/join", handlers.JoinRequest{
		Name: "Alice",
		Team: "Red",
		Role: models.RoleParticipant,
	})
	assertErrorCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}

func TestHandleGetParticipant_NeverCached(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)
	p := setup.joinGame(t, game.ID, "Alice", models.RoleParticipant)

	rec := setup.request(t, http.MethodGet, "/api/participants/"+p.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}

	var detail services.ParticipantDetail
	decodeBody(t, rec, &detail)
	if detail.Participant == nil || detail.Participant.ID != p.ID {
		t.Error("expected participant in response")
	}
	if detail.Game == nil || detail.Game.ID != game.ID {
		t.Error("expected game in response")
	}
}

func TestHandleSubmitAnswer(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)
	p := setup.joinGame(t, game.ID, "Alice", models.RoleParticipant)
	setup.joinGame(t, game.ID, "Bob", models.RoleParticipant)
	setup.startRound(t, game.ID, 1)

	rec := setup.request(t, http.MethodPost, "/api/participants/"+p.ID+"/answer", handlers.AnswerRequest{Answer: "blue"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = setup.request(t, http.MethodGet, "/api/participants/"+p.ID, nil)
	var detail services.ParticipantDetail
	decodeBody(t, rec, &detail)
	if detail.Participant.Answer == nil || *detail.Participant.Answer != "blue" {
		t.Error("expected submitted answer on participant")
	}
}

func TestHandleSubmitAnswer_VoterRejected(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)
	setup.joinGame(t, game.ID, "Alice", models.RoleParticipant)
	v := setup.joinGame(t, game.ID, "Carol", models.RoleVoter)
	setup.startRound(t, game.ID, 1)

	rec := setup.request(t, http.MethodPost, "/api/participants/"+v.ID+"/answer", handlers.AnswerRequest{Answer: "blue"})
	assertErrorCode(t, rec, http.StatusConflict, "INVALID_STATE")
}

func TestHandleSubmitVote(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)
	p := setup.joinGame(t, game.ID, "Alice", models.RoleParticipant)
	setup.joinGame(t, game.ID, "Bob", models.RoleParticipant)
	v := setup.joinGame(t, game.ID, "Carol", models.RoleVoter)
	setup.startRound(t, game.ID, 1)

	vote := handlers.VoteRequest{
		VotedForID:     p.ID,
		GameID:         game.ID,
		QuestionNumber: 1,
	}
	rec := setup.request(t, http.MethodPost, "/api/participants/"+v.ID+"/vote", vote)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Second vote in the same round is rejected
	rec = setup.request(t, http.MethodPost, "/api/participants/"+v.ID+"/vote", vote)
	assertErrorCode(t, rec, http.StatusConflict, "ALREADY_VOTED")
}

func TestHandleRemoveParticipant(t *testing.T) {
	setup := newTestSetup(t)
	game := setup.createGame(t, 1)
	p := setup.joinGame(t, game.ID, "Alice", models.RoleParticipant)

	// Removal is an admin action
	rec := setup.request(t, http.MethodDelete, "/api/participants/"+p.ID, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", rec.Code)
	}

	rec = setup.adminRequest(t, http.MethodDelete, "/api/participants/"+p.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = setup.request(t, http.MethodGet, "/api/participants/"+p.ID, nil)
	assertErrorCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}
