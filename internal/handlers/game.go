package handlers

import (
	"net/http"

	"github.com/siddug/sag/internal/auth"
	"github.com/siddug/sag/internal/services"
)

// handleCreateGame creates an Imposters game in the signup phase
func (h *Handlers) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req GameCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	game, err := h.Game.CreateGame(r.Context(), auth.AdminID(r.Context()), services.CreateGameInput{
		Name:                req.Name,
		TeamNames:           req.Teams,
		QuestionPairs:       req.QuestionPairs,
		ParticipantsPerTeam: req.ParticipantsPerTeam,
		VotersPerTeam:       req.VotersPerTeam,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, game)
}

// handleListGames lists the authenticated admin's games
func (h *Handlers) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.Game.ListGames(r.Context(), auth.AdminID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, games)
}

// handleGetGame returns full game state for polling clients.
// The response must never be cached: every poll has to observe
// phase changes made by the admin between requests.
func (h *Handlers) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	state, err := h.Game.GetGame(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondOK(w, state)
}

// handleUpdateMode moves a game to another phase
func (h *Handlers) handleUpdateMode(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ModeUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Game.UpdateMode(r.Context(), auth.AdminID(r.Context()), id, req.Mode); err != nil {
		respondError(w, err)
		return
	}

	h.notifyGame(id)
	respondSuccess(w, "Mode updated")
}

// handleStartQuestion starts or restarts a question round
func (h *Handlers) handleStartQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req StartQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Game.StartQuestion(r.Context(), auth.AdminID(r.Context()), id, req.QuestionNumber); err != nil {
		respondError(w, err)
		return
	}

	h.notifyGame(id)
	respondSuccess(w, "Question started")
}

// handleUpdateScores overwrites a game's team scores
func (h *Handlers) handleUpdateScores(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ScoresUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Game.UpdateScores(r.Context(), auth.AdminID(r.Context()), id, req.Teams); err != nil {
		respondError(w, err)
		return
	}

	h.notifyGame(id)
	respondSuccess(w, "Scores updated")
}

// handleDeleteGame deletes a game with its participants and votes
func (h *Handlers) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Game.DeleteGame(r.Context(), auth.AdminID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}

	h.notifyGame(id)
	respondDeleted(w)
}
