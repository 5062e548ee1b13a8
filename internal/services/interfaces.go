package services

import (
	"context"

	"github.com/siddug/sag/internal/models"
	"github.com/siddug/sag/pkg/llm"
)

// GameServicer defines the interface for Imposters game operations
type GameServicer interface {
	CreateGame(ctx context.Context, adminID string, in CreateGameInput) (*models.Game, error)
	GetGame(ctx context.Context, id string) (*models.GameState, error)
	ListGames(ctx context.Context, adminID string) ([]models.Game, error)
	UpdateMode(ctx context.Context, adminID, gameID, mode string) error
	StartQuestion(ctx context.Context, adminID, gameID string, n int) error
	UpdateScores(ctx context.Context, adminID, gameID string, teams []models.Team) error
	DeleteGame(ctx context.Context, adminID, gameID string) error
}

// ParticipantServicer defines the interface for player operations
type ParticipantServicer interface {
	Join(ctx context.Context, gameID, name, teamName, role string) (*models.Participant, error)
	GetParticipant(ctx context.Context, id string) (*ParticipantDetail, error)
	SubmitAnswer(ctx context.Context, participantID, answer string) error
	SubmitVote(ctx context.Context, in SubmitVoteInput) error
	Remove(ctx context.Context, adminID, participantID string) error
}

// ScoreboardServicer defines the interface for score tracker operations
type ScoreboardServicer interface {
	Create(ctx context.Context, adminID, name string, teams []ScoreTeamInput) (*models.ScoreGame, error)
	Get(ctx context.Context, id string) (*models.ScoreGame, error)
	List(ctx context.Context, adminID string) ([]models.ScoreGame, error)
	Adjust(ctx context.Context, id, teamName string, delta int) ([]models.ScoreTeam, error)
	Delete(ctx context.Context, adminID, id string) error
}

// AIGameServicer defines the interface for AI chat game operations
type AIGameServicer interface {
	CreateTemplate(ctx context.Context, adminID string, in CreateTemplateInput) (*models.AIGameTemplate, error)
	ListTemplates(ctx context.Context, adminID string) ([]models.AIGameTemplate, error)
	DeleteTemplate(ctx context.Context, adminID, id string) error
	Chat(ctx context.Context, templateID string, messages []llm.Message) (*llm.Reply, error)
}

// Ensure concrete types implement interfaces
var (
	_ GameServicer        = (*GameService)(nil)
	_ ParticipantServicer = (*ParticipantService)(nil)
	_ ScoreboardServicer  = (*ScoreboardService)(nil)
	_ AIGameServicer      = (*AIGameService)(nil)
)
