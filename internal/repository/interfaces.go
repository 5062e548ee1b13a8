package repository

import (
	"context"

	"github.com/siddug/sag/internal/models"
)

// GameRepository defines Imposters game record operations
type GameRepository interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGame(ctx context.Context, id string) (*models.Game, error)
	ListGames(ctx context.Context, adminID string) ([]models.Game, error)
	UpdateGameMode(ctx context.Context, id, mode string) error
	UpdateGameTeams(ctx context.Context, id string, teams []models.Team) error
	DeleteGameCascade(ctx context.Context, id string) error
	StartRound(ctx context.Context, gameID string, questionNumber int, pick func(n int) int) (imposterID string, err error)
}

// ParticipantRepository defines participant record operations
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, p *models.Participant) error
	GetParticipant(ctx context.Context, id string) (*models.Participant, error)
	ListParticipants(ctx context.Context, gameID string) ([]models.Participant, error)
	ParticipantNameTaken(ctx context.Context, gameID, name string) (bool, error)
	SetAnswerForRound(ctx context.Context, id string, questionNumber int, answer string) error
	DeleteParticipantCascade(ctx context.Context, id string) error
}

// VoteRepository defines vote record operations
type VoteRepository interface {
	CreateVote(ctx context.Context, v *models.Vote) error
	VoteExists(ctx context.Context, voterID string, questionNumber int) (bool, error)
	ListVotes(ctx context.Context, gameID string) ([]models.Vote, error)
	ListVotesForRound(ctx context.Context, gameID string, questionNumber int) ([]models.Vote, error)
}

// ScoreboardRepository defines score tracker operations
type ScoreboardRepository interface {
	CreateScoreGame(ctx context.Context, g *models.ScoreGame) error
	GetScoreGame(ctx context.Context, id string) (*models.ScoreGame, error)
	ListScoreGames(ctx context.Context, adminID string) ([]models.ScoreGame, error)
	UpdateScoreGame(ctx context.Context, id string, teams []models.ScoreTeam, history []models.ScoreHistoryEntry) error
	DeleteScoreGame(ctx context.Context, id string) error
}

// AIGameRepository defines AI chat template operations
type AIGameRepository interface {
	CreateTemplate(ctx context.Context, t *models.AIGameTemplate) error
	GetTemplate(ctx context.Context, id string) (*models.AIGameTemplate, error)
	ListTemplates(ctx context.Context, adminID string) ([]models.AIGameTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	GameRepository
	ParticipantRepository
	VoteRepository
	ScoreboardRepository
	AIGameRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
