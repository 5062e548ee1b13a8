package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Auth (public)
	r.Post("/api/auth/login", h.handleLogin)
	r.Post("/api/auth/logout", h.handleLogout)

	// Player-facing API (public, polled)
	r.Get("/api/imposters/{id}", h.handleGetGame)
	r.Post("/api/imposters/{id}/join", h.handleJoin)
	r.Get("/api/imposters/{id}/qr", h.handleGameQR)
	r.Get("/api/participants/{id}", h.handleGetParticipant)
	r.Post("/api/participants/{id}/answer", h.handleSubmitAnswer)
	r.Post("/api/participants/{id}/vote", h.handleSubmitVote)
	r.Get("/api/score-tracker/{id}", h.handleGetScoreGame)

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		// Imposters games
		r.Post("/api/imposters", h.handleCreateGame)
		r.Get("/api/imposters", h.handleListGames)
		r.Delete("/api/imposters/{id}", h.handleDeleteGame)
		r.Post("/api/imposters/{id}/mode", h.handleUpdateMode)
		r.Post("/api/imposters/{id}/start-question", h.handleStartQuestion)
		r.Put("/api/imposters/{id}/scores", h.handleUpdateScores)
		r.Delete("/api/participants/{id}", h.handleRemoveParticipant)

		// Score tracker
		r.Post("/api/score-tracker", h.handleCreateScoreGame)
		r.Get("/api/score-tracker", h.handleListScoreGames)
		r.Post("/api/score-tracker/{id}/adjust", h.handleAdjustScore)
		r.Delete("/api/score-tracker/{id}", h.handleDeleteScoreGame)

		// AI chat games
		r.Post("/api/ai-games", h.handleCreateTemplate)
		r.Get("/api/ai-games", h.handleListTemplates)
		r.Delete("/api/ai-games/{id}", h.handleDeleteTemplate)
		r.Post("/api/ai/chat", h.handleChat)
	})

	return r
}
