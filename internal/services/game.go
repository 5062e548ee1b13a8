package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/siddug/sag/internal/errors"
	"github.com/siddug/sag/internal/logger"
	"github.com/siddug/sag/internal/models"
	"github.com/siddug/sag/internal/repository"
)

// GameServiceRepository defines the repository methods needed by GameService
type GameServiceRepository interface {
	repository.GameRepository
	repository.ParticipantRepository
	repository.VoteRepository
}

// GameService handles Imposters game lifecycle and round control
type GameService struct {
	log  logger.Logger
	repo GameServiceRepository
	pick func(n int) int
}

// NewGameService creates a new GameService
func NewGameService(log logger.Logger, repo GameServiceRepository) *GameService {
	return &GameService{
		log:  log,
		repo: repo,
		pick: rand.Intn,
	}
}

// SetPickFunc overrides the imposter selection function. The default is
// a uniform pick over the fresh participant list; tests pin it.
func (s *GameService) SetPickFunc(pick func(n int) int) {
	s.pick = pick
}

// CreateGameInput carries the admin's new-game form
type CreateGameInput struct {
	Name                string
	TeamNames           []string
	QuestionPairs       []models.QuestionPair
	ParticipantsPerTeam int
	VotersPerTeam       int
}

// CreateGame creates a game in the signup phase with zeroed team scores
func (s *GameService) CreateGame(ctx context.Context, adminID string, in CreateGameInput) (*models.Game, error) {
	if in.Name == "" {
		return nil, errors.Validation("game name is required")
	}
	if len(in.TeamNames) < 2 {
		return nil, errors.Validation("at least 2 teams are required")
	}
	if len(in.QuestionPairs) < 1 {
		return nil, errors.Validation("at least 1 question pair is required")
	}

	seen := make(map[string]bool, len(in.TeamNames))
	teams := make([]models.Team, 0, len(in.TeamNames))
	for _, name := range in.TeamNames {
		if name == "" {
			return nil, errors.Validation("team names must not be empty")
		}
		if seen[name] {
			return nil, errors.Validationf("duplicate team name %q", name)
		}
		seen[name] = true
		teams = append(teams, models.Team{Name: name, Score: 0})
	}

	for i, pair := range in.QuestionPairs {
		if pair.RealQ == "" || pair.FakeQ == "" {
			return nil, errors.Validationf("question pair %d is missing a question", i+1)
		}
	}

	if in.ParticipantsPerTeam <= 0 {
		in.ParticipantsPerTeam = 3
	}
	if in.VotersPerTeam <= 0 {
		in.VotersPerTeam = 5
	}

	game := &models.Game{
		ID:                  uuid.New().String(),
		AdminID:             adminID,
		Name:                in.Name,
		Teams:               teams,
		QuestionPairs:       in.QuestionPairs,
		ParticipantsPerTeam: in.ParticipantsPerTeam,
		VotersPerTeam:       in.VotersPerTeam,
		CurrentMode:         models.Signup().String(),
		CurrentQuestion:     0,
		CreatedAt:           time.Now(),
	}

	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	s.log.Info("Game created", "game_id", game.ID, "teams", len(teams), "rounds", len(in.QuestionPairs))
	return game, nil
}

// GetGame returns a game with its nested participants and votes. This
// is the record polling clients re-fetch every tick.
func (s *GameService) GetGame(ctx context.Context, id string) (*models.GameState, error) {
	game, err := s.repo.GetGame(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("game not found")
	}
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	votes, err := s.repo.ListVotes(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.GameState{
		Game:         game,
		Participants: participants,
		Votes:        votes,
	}, nil
}

// ListGames returns the games owned by an admin
func (s *GameService) ListGames(ctx context.Context, adminID string) ([]models.Game, error) {
	return s.repo.ListGames(ctx, adminID)
}

// UpdateMode transitions the game's phase. Only transitions allowed by
// the round state machine are accepted; question phases are entered
// through StartQuestion, which also resets round state.
func (s *GameService) UpdateMode(ctx context.Context, adminID, gameID, modeStr string) error {
	game, err := s.ownedGame(ctx, adminID, gameID)
	if err != nil {
		return err
	}

	next, err := models.ParseMode(modeStr)
	if err != nil {
		return errors.Validationf("invalid mode %q", modeStr)
	}
	if next.Kind == models.ModeQuestion {
		return errors.InvalidState("question phases are entered via start-question")
	}

	current, err := models.ParseMode(game.CurrentMode)
	if err != nil {
		return errors.Internal(err)
	}
	if !current.CanTransitionTo(next, game.TotalRounds()) {
		return errors.InvalidStatef("cannot transition from %s to %s", current, next)
	}

	if err := s.repo.UpdateGameMode(ctx, gameID, next.String()); err != nil {
		return err
	}

	s.log.Info("Game mode updated", "game_id", gameID, "from", current.String(), "to", next.String())
	return nil
}

// StartQuestion begins round n: it atomically clears every answering
// participant's answer and fake-question flag for the new round, purges
// stale votes for round n, assigns the fake question to one participant
// picked uniformly at random from the freshly reset set, and moves the
// game into the question-n phase. Restarting the current round is
// allowed; skipping ahead or going back is not.
func (s *GameService) StartQuestion(ctx context.Context, adminID, gameID string, n int) error {
	game, err := s.ownedGame(ctx, adminID, gameID)
	if err != nil {
		return err
	}

	if n < 1 || n > game.TotalRounds() {
		return errors.Validationf("question number %d is out of range (1-%d)", n, game.TotalRounds())
	}

	current, err := models.ParseMode(game.CurrentMode)
	if err != nil {
		return errors.Internal(err)
	}
	switch {
	case current.Kind == models.ModeSignup || current.Kind == models.ModeFinished:
		return errors.InvalidStatef("cannot start a question from %s", current)
	case n == game.CurrentQuestion:
		// restart of the round in progress
	case n == game.CurrentQuestion+1:
		// advancing is only legal once the previous round's results are shown
		if current.Kind != models.ModeGame && current.Kind != models.ModeResult {
			return errors.InvalidStatef("cannot start question %d from %s", n, current)
		}
	default:
		return errors.Validationf("question number must be %d or %d, got %d",
			game.CurrentQuestion, game.CurrentQuestion+1, n)
	}

	imposterID, err := s.repo.StartRound(ctx, gameID, n, s.pick)
	if err == repository.ErrNotFound {
		return errors.NotFound("game not found")
	}
	if err != nil {
		return err
	}

	s.log.Info("Round started", "game_id", gameID, "question", n, "imposter_assigned", imposterID != "")
	return nil
}

// UpdateScores replaces the full teams list with admin-supplied data.
// Last writer wins; calling it twice with the same list is idempotent.
func (s *GameService) UpdateScores(ctx context.Context, adminID, gameID string, teams []models.Team) error {
	if _, err := s.ownedGame(ctx, adminID, gameID); err != nil {
		return err
	}

	if len(teams) < 2 {
		return errors.Validation("at least 2 teams are required")
	}
	seen := make(map[string]bool, len(teams))
	for _, t := range teams {
		if t.Name == "" {
			return errors.Validation("team names must not be empty")
		}
		if seen[t.Name] {
			return errors.Validationf("duplicate team name %q", t.Name)
		}
		seen[t.Name] = true
	}

	return s.repo.UpdateGameTeams(ctx, gameID, teams)
}

// DeleteGame removes a game with all of its participants and votes
func (s *GameService) DeleteGame(ctx context.Context, adminID, gameID string) error {
	if _, err := s.ownedGame(ctx, adminID, gameID); err != nil {
		return err
	}

	if err := s.repo.DeleteGameCascade(ctx, gameID); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFound("game not found")
		}
		return err
	}

	s.log.Info("Game deleted", "game_id", gameID)
	return nil
}

// ownedGame loads a game and verifies the caller owns it
func (s *GameService) ownedGame(ctx context.Context, adminID, gameID string) (*models.Game, error) {
	game, err := s.repo.GetGame(ctx, gameID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("game not found")
	}
	if err != nil {
		return nil, err
	}
	if game.AdminID != adminID {
		return nil, ErrNotOwner
	}
	return game, nil
}
