package handlers

import (
	"net/http"

	"github.com/siddug/sag/internal/auth"
	"github.com/siddug/sag/internal/services"
)

// handleJoin adds a player to a game during signup
func (h *Handlers) handleJoin(w http.ResponseWriter, r *http.Request) {
	gameID, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req JoinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	p, err := h.Participant.Join(r.Context(), gameID, req.Name, req.Team, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notifyGame(gameID)
	respondCreated(w, JoinResponse{
		Participant: p,
		PollURL:     h.BaseURL + "/api/participants/" + p.ID,
	})
}

// handleGetParticipant returns a participant with game state and cast votes.
// Polled by player clients, so the response is never cached.
func (h *Handlers) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.Participant.GetParticipant(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondOK(w, detail)
}

// handleSubmitAnswer records a participant's answer for the current round
func (h *Handlers) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Participant.SubmitAnswer(r.Context(), id, req.Answer); err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "Answer submitted")
}

// handleSubmitVote casts a voter's imposter vote for a round
func (h *Handlers) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req VoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err = h.Participant.SubmitVote(r.Context(), services.SubmitVoteInput{
		VoterID:        id,
		VotedForID:     req.VotedForID,
		GameID:         req.GameID,
		QuestionNumber: req.QuestionNumber,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "Vote recorded")
}

// handleRemoveParticipant removes a player and their votes from a game
func (h *Handlers) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Participant.Remove(r.Context(), auth.AdminID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}

	respondDeleted(w)
}
