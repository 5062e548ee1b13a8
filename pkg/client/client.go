// Package client provides a Go client for the party game API, including
// the polling loop player apps use to follow an Imposters game.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/siddug/sag/internal/models"
)

// APIError is an error response from the server
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// ParticipantView is the polled view of one participant: their record,
// the current game state, and the votes they have cast
type ParticipantView struct {
	Participant *models.Participant `json:"participant"`
	Game        *models.Game        `json:"game"`
	VotesCast   []models.Vote       `json:"votes_cast"`
}

// Client is an HTTP client for the game API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given server base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewWithHTTPClient creates a Client with a custom http.Client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Join signs a player up for a game during the signup phase
func (c *Client) Join(ctx context.Context, gameID, name, team, role string) (*models.Participant, error) {
	body := map[string]string{"name": name, "team": team, "role": role}
	var resp struct {
		Participant *models.Participant `json:"participant"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/imposters/"+gameID+"/join", body, &resp); err != nil {
		return nil, err
	}
	return resp.Participant, nil
}

// GetGame fetches the full game state
func (c *Client) GetGame(ctx context.Context, gameID string) (*models.GameState, error) {
	var state models.GameState
	if err := c.do(ctx, http.MethodGet, "/api/imposters/"+gameID, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// GetParticipant fetches a participant with their game and cast votes
func (c *Client) GetParticipant(ctx context.Context, participantID string) (*ParticipantView, error) {
	var view ParticipantView
	if err := c.do(ctx, http.MethodGet, "/api/participants/"+participantID, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// SubmitAnswer submits a participant's answer for the current round
func (c *Client) SubmitAnswer(ctx context.Context, participantID, answer string) error {
	body := map[string]string{"answer": answer}
	return c.do(ctx, http.MethodPost, "/api/participants/"+participantID+"/answer", body, nil)
}

// SubmitVote casts a voter's imposter vote for a round
func (c *Client) SubmitVote(ctx context.Context, voterID, votedForID, gameID string, questionNumber int) error {
	body := map[string]interface{}{
		"voted_for_id":    votedForID,
		"game_id":         gameID,
		"question_number": questionNumber,
	}
	return c.do(ctx, http.MethodPost, "/api/participants/"+voterID+"/vote", body, nil)
}

// do executes a request and decodes the response, mapping error
// payloads to APIError
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Polled state must never come from an intermediary cache
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
