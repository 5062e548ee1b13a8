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

// ParticipantServiceRepository defines the repository methods needed by ParticipantService
type ParticipantServiceRepository interface {
	repository.GameRepository
	repository.ParticipantRepository
	repository.VoteRepository
}

// ParticipantService handles player identity, answers and votes
type ParticipantService struct {
	log  logger.Logger
	repo ParticipantServiceRepository
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(log logger.Logger, repo ParticipantServiceRepository) *ParticipantService {
	return &ParticipantService{
		log:  log,
		repo: repo,
	}
}

// Join adds a player to a game during signup. The returned participant
// id is the player's durable identity; clients keep it in their URL.
func (s *ParticipantService) Join(ctx context.Context, gameID, name, teamName, role string) (*models.Participant, error) {
	if gameID == "" || name == "" || teamName == "" || role == "" {
		return nil, errors.Validation("gameId, name, teamName and role are required")
	}
	if role != models.RoleParticipant && role != models.RoleVoter {
		return nil, errors.Validationf("invalid role %q", role)
	}

	game, err := s.repo.GetGame(ctx, gameID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("game not found")
	}
	if err != nil {
		return nil, err
	}

	if game.CurrentMode != models.Signup().String() {
		return nil, ErrGameAlreadyStarted
	}
	if !game.HasTeam(teamName) {
		return nil, errors.Validationf("no team named %q in this game", teamName)
	}

	taken, err := s.repo.ParticipantNameTaken(ctx, gameID, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	p := &models.Participant{
		ID:        uuid.New().String(),
		GameID:    gameID,
		Name:      name,
		TeamName:  teamName,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateParticipant(ctx, p); err != nil {
		// The unique index catches a concurrent join with the same name
		if err == repository.ErrDuplicate {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.log.Info("Participant joined", "game_id", gameID, "participant_id", p.ID, "role", role, "team", teamName)
	return p, nil
}

// ParticipantDetail is the player-page view: the participant, their
// game, and the votes they have cast.
type ParticipantDetail struct {
	Participant *models.Participant `json:"participant"`
	Game        *models.Game        `json:"game"`
	VotesCast   []models.Vote       `json:"votes_cast"`
}

// GetParticipant returns a participant with their game and cast votes
func (s *ParticipantService) GetParticipant(ctx context.Context, id string) (*ParticipantDetail, error) {
	p, err := s.repo.GetParticipant(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("participant not found")
	}
	if err != nil {
		return nil, err
	}

	game, err := s.repo.GetGame(ctx, p.GameID)
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}

	votes, err := s.repo.ListVotes(ctx, p.GameID)
	if err != nil {
		return nil, err
	}
	var cast []models.Vote
	for _, v := range votes {
		if v.VoterID == id {
			cast = append(cast, v)
		}
	}

	return &ParticipantDetail{Participant: p, Game: game, VotesCast: cast}, nil
}

// SubmitAnswer records a participant's free-text answer for their
// currently assigned round. Re-submission overwrites; last write wins.
// The write is pinned to the round the participant was assigned when
// this call started, so an in-flight submission cannot resurrect a
// stale answer after the admin restarts or advances the round.
func (s *ParticipantService) SubmitAnswer(ctx context.Context, participantID, answer string) error {
	p, err := s.repo.GetParticipant(ctx, participantID)
	if err == repository.ErrNotFound {
		return errors.NotFound("participant not found")
	}
	if err != nil {
		return err
	}

	if p.Role != models.RoleParticipant {
		return errors.InvalidState("only participants can submit answers")
	}
	if p.QuestionNumber == nil {
		return errors.InvalidState("no round is in progress")
	}

	err = s.repo.SetAnswerForRound(ctx, participantID, *p.QuestionNumber, answer)
	switch err {
	case repository.ErrStaleRound:
		return ErrRoundChanged
	case repository.ErrNotFound:
		return errors.NotFound("participant not found")
	case nil:
		s.log.Debug("Answer submitted", "participant_id", participantID, "question", *p.QuestionNumber)
		return nil
	default:
		return err
	}
}

// SubmitVoteInput carries a voter's imposter guess
type SubmitVoteInput struct {
	VoterID        string
	VotedForID     string
	GameID         string
	QuestionNumber int
}

// SubmitVote casts a voter's single vote for a round. The composite
// uniqueness constraint in storage is the real double-vote guard; the
// existence pre-check only yields the friendlier error on the common path.
func (s *ParticipantService) SubmitVote(ctx context.Context, in SubmitVoteInput) error {
	if in.VoterID == "" || in.VotedForID == "" || in.GameID == "" || in.QuestionNumber < 1 {
		return errors.Validation("voterId, votedForId, gameId and questionNumber are required")
	}

	voter, err := s.repo.GetParticipant(ctx, in.VoterID)
	if err == repository.ErrNotFound {
		return errors.NotFound("voter not found")
	}
	if err != nil {
		return err
	}
	if voter.Role != models.RoleVoter {
		return errors.InvalidState("only voters can cast votes")
	}
	if voter.GameID != in.GameID {
		return errors.Validation("voter does not belong to this game")
	}

	target, err := s.repo.GetParticipant(ctx, in.VotedForID)
	if err == repository.ErrNotFound {
		return errors.NotFound("voted-for participant not found")
	}
	if err != nil {
		return err
	}
	if target.Role != models.RoleParticipant || target.GameID != in.GameID {
		return errors.Validation("votes must target a participant in the same game")
	}

	game, err := s.repo.GetGame(ctx, in.GameID)
	if err == repository.ErrNotFound {
		return errors.NotFound("game not found")
	}
	if err != nil {
		return err
	}
	if in.QuestionNumber > game.CurrentQuestion {
		return errors.Validationf("round %d has not started", in.QuestionNumber)
	}

	exists, err := s.repo.VoteExists(ctx, in.VoterID, in.QuestionNumber)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyVoted
	}

	vote := &models.Vote{
		ID:             uuid.New().String(),
		GameID:         in.GameID,
		QuestionNumber: in.QuestionNumber,
		VoterID:        in.VoterID,
		VotedForID:     in.VotedForID,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateVote(ctx, vote); err != nil {
		if err == repository.ErrDuplicate {
			return ErrAlreadyVoted
		}
		return err
	}

	s.log.Info("Vote cast", "game_id", in.GameID, "question", in.QuestionNumber, "voter_id", in.VoterID)
	return nil
}

// Remove deletes a participant (admin action, allowed in any phase).
// Votes cast by and for the removed participant are deleted with them.
func (s *ParticipantService) Remove(ctx context.Context, adminID, participantID string) error {
	p, err := s.repo.GetParticipant(ctx, participantID)
	if err == repository.ErrNotFound {
		return errors.NotFound("participant not found")
	}
	if err != nil {
		return err
	}

	game, err := s.repo.GetGame(ctx, p.GameID)
	if err == repository.ErrNotFound {
		return errors.NotFound("game not found")
	}
	if err != nil {
		return err
	}
	if game.AdminID != adminID {
		return ErrNotOwner
	}

	if err := s.repo.DeleteParticipantCascade(ctx, participantID); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFound("participant not found")
		}
		return err
	}

	s.log.Info("Participant removed", "game_id", p.GameID, "participant_id", participantID)
	return nil
}
