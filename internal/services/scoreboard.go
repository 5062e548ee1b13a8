package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/siddug/sag/internal/errors"
	"github.com/siddug/sag/internal/logger"
	"github.com/siddug/sag/internal/models"
	"github.com/siddug/sag/internal/repository"
)

// ScoreboardService handles the standalone team score tracker
type ScoreboardService struct {
	log  logger.Logger
	repo repository.ScoreboardRepository
}

// NewScoreboardService creates a new ScoreboardService
func NewScoreboardService(log logger.Logger, repo repository.ScoreboardRepository) *ScoreboardService {
	return &ScoreboardService{
		log:  log,
		repo: repo,
	}
}

// ScoreTeamInput is one team in the create form
type ScoreTeamInput struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Create creates a score tracker game with all scores at zero
func (s *ScoreboardService) Create(ctx context.Context, adminID, name string, teams []ScoreTeamInput) (*models.ScoreGame, error) {
	if name == "" {
		return nil, errors.Validation("game name is required")
	}
	if len(teams) == 0 {
		return nil, errors.Validation("at least one team is required")
	}

	scoreTeams := make([]models.ScoreTeam, 0, len(teams))
	for _, t := range teams {
		if t.Name == "" {
			return nil, errors.Validation("team names must not be empty")
		}
		members := t.Members
		if members == nil {
			members = []string{}
		}
		scoreTeams = append(scoreTeams, models.ScoreTeam{Name: t.Name, Members: members, Score: 0})
	}

	game := &models.ScoreGame{
		ID:        uuid.New().String(),
		AdminID:   adminID,
		Name:      name,
		Teams:     scoreTeams,
		History:   []models.ScoreHistoryEntry{},
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateScoreGame(ctx, game); err != nil {
		return nil, err
	}

	s.log.Info("Score game created", "game_id", game.ID, "teams", len(scoreTeams))
	return game, nil
}

// Get returns a score tracker game
func (s *ScoreboardService) Get(ctx context.Context, id string) (*models.ScoreGame, error) {
	game, err := s.repo.GetScoreGame(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("game not found")
	}
	return game, err
}

// List returns an admin's score tracker games
func (s *ScoreboardService) List(ctx context.Context, adminID string) ([]models.ScoreGame, error) {
	return s.repo.ListScoreGames(ctx, adminID)
}

// Adjust applies a signed delta to one team's score and appends a
// history entry recording the change
func (s *ScoreboardService) Adjust(ctx context.Context, id, teamName string, delta int) ([]models.ScoreTeam, error) {
	if teamName == "" {
		return nil, errors.Validation("teamName is required")
	}

	game, err := s.repo.GetScoreGame(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("game not found")
	}
	if err != nil {
		return nil, err
	}

	found := false
	for i := range game.Teams {
		if game.Teams[i].Name == teamName {
			game.Teams[i].Score += delta
			found = true
			break
		}
	}
	if !found {
		return nil, errors.NotFoundf("no team named %q", teamName)
	}

	game.History = append(game.History, models.ScoreHistoryEntry{
		Team:      teamName,
		Delta:     delta,
		Timestamp: time.Now(),
	})

	if err := s.repo.UpdateScoreGame(ctx, id, game.Teams, game.History); err != nil {
		return nil, err
	}
	return game.Teams, nil
}

// Delete removes a score tracker game (owner only)
func (s *ScoreboardService) Delete(ctx context.Context, adminID, id string) error {
	game, err := s.repo.GetScoreGame(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NotFound("game not found")
	}
	if err != nil {
		return err
	}
	if game.AdminID != adminID {
		return ErrNotOwner
	}
	return s.repo.DeleteScoreGame(ctx, id)
}
