package mock

import (
	"context"

	"github.com/siddug/sag/internal/models"
	"github.com/siddug/sag/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.StartRoundError = errors.New("database error")
//	svc := services.NewGameService(log, mockRepo)
//	err := svc.StartQuestion(ctx, adminID, gameID, 1)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Game Errors =====
	CreateGameError        error
	GetGameError           error
	ListGamesError         error
	UpdateGameModeError    error
	UpdateGameTeamsError   error
	DeleteGameCascadeError error
	StartRoundError        error

	// ===== Participant Errors =====
	CreateParticipantError        error
	GetParticipantError           error
	ListParticipantsError         error
	ParticipantNameTakenError     error
	SetAnswerForRoundError        error
	DeleteParticipantCascadeError error

	// ===== Vote Errors =====
	CreateVoteError error
	VoteExistsError error
	ListVotesError  error

	// ===== Score Tracker Errors =====
	GetScoreGameError    error
	UpdateScoreGameError error

	// ===== AI Game Errors =====
	GetTemplateError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

func (m *Repository) CreateGame(ctx context.Context, game *models.Game) error {
	if m.CreateGameError != nil {
		return m.CreateGameError
	}
	return m.FullRepository.CreateGame(ctx, game)
}

func (m *Repository) GetGame(ctx context.Context, id string) (*models.Game, error) {
	if m.GetGameError != nil {
		return nil, m.GetGameError
	}
	return m.FullRepository.GetGame(ctx, id)
}

func (m *Repository) ListGames(ctx context.Context, adminID string) ([]models.Game, error) {
	if m.ListGamesError != nil {
		return nil, m.ListGamesError
	}
	return m.FullRepository.ListGames(ctx, adminID)
}

func (m *Repository) UpdateGameMode(ctx context.Context, id, mode string) error {
	if m.UpdateGameModeError != nil {
		return m.UpdateGameModeError
	}
	return m.FullRepository.UpdateGameMode(ctx, id, mode)
}

func (m *Repository) UpdateGameTeams(ctx context.Context, id string, teams []models.Team) error {
	if m.UpdateGameTeamsError != nil {
		return m.UpdateGameTeamsError
	}
	return m.FullRepository.UpdateGameTeams(ctx, id, teams)
}

func (m *Repository) DeleteGameCascade(ctx context.Context, id string) error {
	if m.DeleteGameCascadeError != nil {
		return m.DeleteGameCascadeError
	}
	return m.FullRepository.DeleteGameCascade(ctx, id)
}

func (m *Repository) StartRound(ctx context.Context, gameID string, questionNumber int, pick func(n int) int) (string, error) {
	if m.StartRoundError != nil {
		return "", m.StartRoundError
	}
	return m.FullRepository.StartRound(ctx, gameID, questionNumber, pick)
}

func (m *Repository) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if m.CreateParticipantError != nil {
		return m.CreateParticipantError
	}
	return m.FullRepository.CreateParticipant(ctx, p)
}

func (m *Repository) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	if m.GetParticipantError != nil {
		return nil, m.GetParticipantError
	}
	return m.FullRepository.GetParticipant(ctx, id)
}

func (m *Repository) ListParticipants(ctx context.Context, gameID string) ([]models.Participant, error) {
	if m.ListParticipantsError != nil {
		return nil, m.ListParticipantsError
	}
	return m.FullRepository.ListParticipants(ctx, gameID)
}

func (m *Repository) ParticipantNameTaken(ctx context.Context, gameID, name string) (bool, error) {
	if m.ParticipantNameTakenError != nil {
		return false, m.ParticipantNameTakenError
	}
	return m.FullRepository.ParticipantNameTaken(ctx, gameID, name)
}

func (m *Repository) SetAnswerForRound(ctx context.Context, id string, questionNumber int, answer string) error {
	if m.SetAnswerForRoundError != nil {
		return m.SetAnswerForRoundError
	}
	return m.FullRepository.SetAnswerForRound(ctx, id, questionNumber, answer)
}

func (m *Repository) DeleteParticipantCascade(ctx context.Context, id string) error {
	if m.DeleteParticipantCascadeError != nil {
		return m.DeleteParticipantCascadeError
	}
	return m.FullRepository.DeleteParticipantCascade(ctx, id)
}

func (m *Repository) CreateVote(ctx context.Context, v *models.Vote) error {
	if m.CreateVoteError != nil {
		return m.CreateVoteError
	}
	return m.FullRepository.CreateVote(ctx, v)
}

func (m *Repository) VoteExists(ctx context.Context, voterID string, questionNumber int) (bool, error) {
	if m.VoteExistsError != nil {
		return false, m.VoteExistsError
	}
	return m.FullRepository.VoteExists(ctx, voterID, questionNumber)
}

func (m *Repository) ListVotes(ctx context.Context, gameID string) ([]models.Vote, error) {
	if m.ListVotesError != nil {
		return nil, m.ListVotesError
	}
	return m.FullRepository.ListVotes(ctx, gameID)
}

func (m *Repository) GetScoreGame(ctx context.Context, id string) (*models.ScoreGame, error) {
	if m.GetScoreGameError != nil {
		return nil, m.GetScoreGameError
	}
	return m.FullRepository.GetScoreGame(ctx, id)
}

func (m *Repository) UpdateScoreGame(ctx context.Context, id string, teams []models.ScoreTeam, history []models.ScoreHistoryEntry) error {
	if m.UpdateScoreGameError != nil {
		return m.UpdateScoreGameError
	}
	return m.FullRepository.UpdateScoreGame(ctx, id, teams, history)
}

func (m *Repository) GetTemplate(ctx context.Context, id string) (*models.AIGameTemplate, error) {
	if m.GetTemplateError != nil {
		return nil, m.GetTemplateError
	}
	return m.FullRepository.GetTemplate(ctx, id)
}

// Ensure mock still satisfies the full contract
var _ repository.FullRepository = (*Repository)(nil)
