package handlers

import "github.com/siddug/sag/internal/models"

// LoginRequest is a request to start an admin session
type LoginRequest struct {
	Phrase string `json:"phrase"`
}

// GameCreateRequest is a request to create an Imposters game
type GameCreateRequest struct {
	Name                string                `json:"name"`
	Teams               []string              `json:"teams"`
	QuestionPairs       []models.QuestionPair `json:"question_pairs"`
	ParticipantsPerTeam int                   `json:"participants_per_team"`
	VotersPerTeam       int                   `json:"voters_per_team"`
}

// ModeUpdateRequest is a request to move a game to another phase
type ModeUpdateRequest struct {
	Mode string `json:"mode"`
}

// StartQuestionRequest is a request to start or restart a question round
type StartQuestionRequest struct {
	QuestionNumber int `json:"question_number"`
}

// ScoresUpdateRequest is a request to overwrite a game's team scores
type ScoresUpdateRequest struct {
	Teams []models.Team `json:"teams"`
}

// JoinRequest is a request to join a game during signup
type JoinRequest struct {
	Name string `json:"name"`
	Team string `json:"team"`
	Role string `json:"role"`
}

// AnswerRequest is a request to submit a round answer
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// VoteRequest is a request to cast an imposter vote
type VoteRequest struct {
	VotedForID     string `json:"voted_for_id"`
	GameID         string `json:"game_id"`
	QuestionNumber int    `json:"question_number"`
}

// ScoreGameCreateRequest is a request to create a score tracker game
type ScoreGameCreateRequest struct {
	Name  string                   `json:"name"`
	Teams []ScoreTeamCreateRequest `json:"teams"`
}

// ScoreTeamCreateRequest is a team entry inside a score tracker request
type ScoreTeamCreateRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// ScoreAdjustRequest is a request to adjust one team's score
type ScoreAdjustRequest struct {
	Team  string `json:"team"`
	Delta int    `json:"delta"`
}

// TemplateCreateRequest is a request to create an AI chat game template
type TemplateCreateRequest struct {
	Name                string            `json:"name"`
	GameType            string            `json:"game_type"`
	SystemPrompt        string            `json:"system_prompt"`
	ScoringInstructions string            `json:"scoring_instructions"`
	InitialScore        int               `json:"initial_score"`
	APIKeys             map[string]string `json:"api_keys"`
}

// ChatRequest is a request for one AI chat turn
type ChatRequest struct {
	TemplateID string        `json:"template_id"`
	Messages   []ChatMessage `json:"messages"`
}

// ChatMessage is a single prior turn in a chat request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
