package handlers

import "github.com/siddug/sag/internal/models"

// LoginResponse is the response for a successful login
type LoginResponse struct {
	AdminID string `json:"admin_id"`
}

// JoinResponse is the response for a successful signup
type JoinResponse struct {
	Participant *models.Participant `json:"participant"`
	PollURL     string              `json:"poll_url"`
}

// ScoreAdjustResponse is the response for a score adjustment
type ScoreAdjustResponse struct {
	Teams []models.ScoreTeam `json:"teams"`
}

// ChatResponse is the response for one AI chat turn
type ChatResponse struct {
	Message    string `json:"message"`
	ScoreDelta int    `json:"score_delta"`
	Reasoning  string `json:"reasoning"`
}
