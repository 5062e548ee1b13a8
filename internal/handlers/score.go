package handlers

import (
	"net/http"

	"github.com/siddug/sag/internal/auth"
	"github.com/siddug/sag/internal/services"
)

// handleCreateScoreGame creates a score tracker game
func (h *Handlers) handleCreateScoreGame(w http.ResponseWriter, r *http.Request) {
	var req ScoreGameCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	teams := make([]services.ScoreTeamInput, 0, len(req.Teams))
	for _, t := range req.Teams {
		teams = append(teams, services.ScoreTeamInput{Name: t.Name, Members: t.Members})
	}

	game, err := h.Scoreboard.Create(r.Context(), auth.AdminID(r.Context()), req.Name, teams)
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, game)
}

// handleListScoreGames lists the admin's score tracker games
func (h *Handlers) handleListScoreGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.Scoreboard.List(r.Context(), auth.AdminID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, games)
}

// handleGetScoreGame returns a score tracker game for display clients
func (h *Handlers) handleGetScoreGame(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	game, err := h.Scoreboard.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondOK(w, game)
}

// handleAdjustScore applies a delta to one team's score
func (h *Handlers) handleAdjustScore(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ScoreAdjustRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	teams, err := h.Scoreboard.Adjust(r.Context(), id, req.Team, req.Delta)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ScoreAdjustResponse{Teams: teams})
}

// handleDeleteScoreGame deletes a score tracker game
func (h *Handlers) handleDeleteScoreGame(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Scoreboard.Delete(r.Context(), auth.AdminID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}

	respondDeleted(w)
}
