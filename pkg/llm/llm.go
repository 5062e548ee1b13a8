// Package llm provides clients for the language-model providers used by
// the AI chat games.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/siddug/sag/internal/logger"
)

// Message is one turn of an AI chat transcript
type Message struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// Reply is the structured reply the game expects the model to produce
type Reply struct {
	Message    string `json:"message"`
	ScoreDelta int    `json:"scoreDelta"`
	Reasoning  string `json:"reasoning,omitempty"`
}

// providerOrder is the fallback order when several API keys are configured
var providerOrder = []string{"gemini", "mistral", "openai", "claude"}

// providerModels maps a provider name to the model requested from it
var providerModels = map[string]string{
	"gemini":  "gemini-2.5-flash",
	"mistral": "mistral-small-latest",
	"openai":  "gpt-4o-mini",
	"claude":  "claude-3-5-haiku-latest",
}

// providerEndpoints maps a provider name to an OpenAI-compatible chat
// completions endpoint. All four providers expose one.
var providerEndpoints = map[string]string{
	"gemini":  "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions",
	"mistral": "https://api.mistral.ai/v1/chat/completions",
	"openai":  "https://api.openai.com/v1/chat/completions",
	"claude":  "https://api.anthropic.com/v1/chat/completions",
}

// replyFormatInstruction is appended to every system prompt so the model
// answers in the parseable JSON shape.
const replyFormatInstruction = `

IMPORTANT: You MUST respond in the following JSON format ONLY. Do not include any text outside the JSON:
{"message": "your conversational response here", "scoreDelta": number, "reasoning": "brief explanation of score change"}

The scoreDelta should be an integer (positive or negative) based on the scoring rules provided.`

// Client defines the interface for language-model chat operations
type Client interface {
	// Generate runs one chat completion against the first configured
	// provider and returns the parsed structured reply.
	Generate(ctx context.Context, apiKeys map[string]string, systemPrompt string, messages []Message) (*Reply, error)
}

// HTTPClient talks to the providers' OpenAI-compatible endpoints
type HTTPClient struct {
	httpClient *http.Client
	log        logger.Logger
	endpoints  map[string]string // overridable for tests
}

// NewHTTPClient creates a provider client with a 60s request timeout
func NewHTTPClient(log logger.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
		endpoints:  providerEndpoints,
	}
}

// PickProvider returns the first provider in the fallback order that has
// an API key configured, or "" if none do.
func PickProvider(apiKeys map[string]string) string {
	for _, name := range providerOrder {
		if apiKeys[name] != "" {
			return name
		}
	}
	return ""
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate implements Client
func (c *HTTPClient) Generate(ctx context.Context, apiKeys map[string]string, systemPrompt string, messages []Message) (*Reply, error) {
	provider := PickProvider(apiKeys)
	if provider == "" {
		return nil, ErrNoAPIKeys
	}
	c.log.Debug("LLM request", "provider", provider, "model", providerModels[provider], "messages", len(messages))

	payload := chatRequest{Model: providerModels[provider]}
	payload.Messages = append(payload.Messages, Message{Role: "system", Content: systemPrompt + replyFormatInstruction})
	for _, m := range messages {
		if m.Role == "system" {
			continue
		}
		payload.Messages = append(payload.Messages, m)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints[provider], bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKeys[provider])

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", provider, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%s response: %w", provider, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("%s error: %s", provider, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%s returned no choices", provider)
	}

	return ParseReply(parsed.Choices[0].Message.Content), nil
}

// ParseReply extracts the structured reply from the model's raw text.
// Models occasionally wrap the JSON in prose or code fences; the first
// balanced JSON object found is used. If no parseable JSON is present
// the whole text becomes the message with a zero score delta.
func ParseReply(text string) *Reply {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var reply Reply
		if err := json.Unmarshal([]byte(text[start:end+1]), &reply); err == nil && reply.Message != "" {
			return &reply
		}
	}

	return &Reply{
		Message:   text,
		Reasoning: "Could not parse score from response",
	}
}
