package handlers

import (
	"github.com/siddug/sag/internal/auth"
	"github.com/siddug/sag/internal/services"
	"github.com/siddug/sag/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Game        services.GameServicer
	Participant services.ParticipantServicer
	Scoreboard  services.ScoreboardServicer
	AIGame      services.AIGameServicer
	Auth        *auth.Auth
	Hub         *websocket.Hub
	BaseURL     string
}

// New creates a new Handlers instance with all dependencies
func New(
	game services.GameServicer,
	participant services.ParticipantServicer,
	scoreboard services.ScoreboardServicer,
	aiGame services.AIGameServicer,
	adminAuth *auth.Auth,
	hub *websocket.Hub,
	baseURL string,
) *Handlers {
	return &Handlers{
		Game:        game,
		Participant: participant,
		Scoreboard:  scoreboard,
		AIGame:      aiGame,
		Auth:        adminAuth,
		Hub:         hub,
		BaseURL:     baseURL,
	}
}

// NewForTesting creates a Handlers instance with a fixed auth phrase
func NewForTesting(
	game services.GameServicer,
	participant services.ParticipantServicer,
	scoreboard services.ScoreboardServicer,
	aiGame services.AIGameServicer,
) *Handlers {
	testAuth, _ := auth.New("test-phrase", "test-secret", "test-admin")
	return &Handlers{
		Game:        game,
		Participant: participant,
		Scoreboard:  scoreboard,
		AIGame:      aiGame,
		Auth:        testAuth,
		BaseURL:     "http://localhost:8080",
	}
}

// notifyGame broadcasts a state-changed nudge to a game's websocket room
func (h *Handlers) notifyGame(gameID string) {
	if h.Hub != nil {
		h.Hub.BroadcastGameUpdate(gameID)
	}
}
