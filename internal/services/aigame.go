package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/siddug/sag/internal/errors"
	"github.com/siddug/sag/internal/logger"
	"github.com/siddug/sag/internal/models"
	"github.com/siddug/sag/internal/repository"
	"github.com/siddug/sag/pkg/llm"
)

// AIGameService handles AI chat game templates and single-turn chat
type AIGameService struct {
	log    logger.Logger
	repo   repository.AIGameRepository
	client llm.Client
}

// NewAIGameService creates a new AIGameService
func NewAIGameService(log logger.Logger, repo repository.AIGameRepository, client llm.Client) *AIGameService {
	return &AIGameService{
		log:    log,
		repo:   repo,
		client: client,
	}
}

// CreateTemplateInput carries the admin's new-template form
type CreateTemplateInput struct {
	Name                string
	GameType            string
	SystemPrompt        string
	ScoringInstructions string
	InitialScore        int
	APIKeys             map[string]string
}

// CreateTemplate creates an AI chat game template
func (s *AIGameService) CreateTemplate(ctx context.Context, adminID string, in CreateTemplateInput) (*models.AIGameTemplate, error) {
	if in.Name == "" || in.GameType == "" || in.SystemPrompt == "" {
		return nil, errors.Validation("name, gameType and systemPrompt are required")
	}
	if llm.PickProvider(in.APIKeys) == "" {
		return nil, errors.Validation("at least one provider API key is required")
	}

	t := &models.AIGameTemplate{
		ID:                  uuid.New().String(),
		AdminID:             adminID,
		Name:                in.Name,
		GameType:            in.GameType,
		SystemPrompt:        in.SystemPrompt,
		ScoringInstructions: in.ScoringInstructions,
		InitialScore:        in.InitialScore,
		APIKeys:             in.APIKeys,
		CreatedAt:           time.Now(),
	}
	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info("AI game template created", "template_id", t.ID, "game_type", t.GameType)
	return t, nil
}

// ListTemplates returns an admin's templates
func (s *AIGameService) ListTemplates(ctx context.Context, adminID string) ([]models.AIGameTemplate, error) {
	return s.repo.ListTemplates(ctx, adminID)
}

// DeleteTemplate removes a template (owner only)
func (s *AIGameService) DeleteTemplate(ctx context.Context, adminID, id string) error {
	t, err := s.repo.GetTemplate(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NotFound("template not found")
	}
	if err != nil {
		return err
	}
	if t.AdminID != adminID {
		return ErrNotOwner
	}
	return s.repo.DeleteTemplate(ctx, id)
}

// Chat runs one turn of an AI chat game: the transcript goes to the
// template's first configured provider and the JSON-shaped reply comes
// back parsed. The scoring instructions ride along in the system prompt.
func (s *AIGameService) Chat(ctx context.Context, templateID string, messages []llm.Message) (*llm.Reply, error) {
	if len(messages) == 0 {
		return nil, errors.Validation("messages are required")
	}

	t, err := s.repo.GetTemplate(ctx, templateID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("template not found")
	}
	if err != nil {
		return nil, err
	}

	systemPrompt := t.SystemPrompt
	if t.ScoringInstructions != "" {
		systemPrompt += "\n\nScoring rules:\n" + t.ScoringInstructions
	}

	reply, err := s.client.Generate(ctx, t.APIKeys, systemPrompt, messages)
	if err == llm.ErrNoAPIKeys {
		return nil, errors.Validation("no provider API keys configured for this template")
	}
	if err != nil {
		s.log.Error("AI chat failed", "template_id", templateID, "error", err)
		return nil, err
	}
	return reply, nil
}
