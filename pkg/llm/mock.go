package llm

import (
	"context"
	"errors"
)

// ErrNoAPIKeys is returned when no provider has a key configured
var ErrNoAPIKeys = errors.New("no API keys configured")

// MockClient is a canned-reply client for testing
type MockClient struct {
	reply       *Reply
	generateErr error

	// LastSystemPrompt and LastMessages record the most recent call
	LastSystemPrompt string
	LastMessages     []Message
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithReply sets the reply to return
func WithReply(reply *Reply) MockOption {
	return func(m *MockClient) {
		m.reply = reply
	}
}

// WithGenerateError sets an error to return from Generate
func WithGenerateError(err error) MockOption {
	return func(m *MockClient) {
		m.generateErr = err
	}
}

// NewMockClient creates a mock client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		reply: &Reply{Message: "mock reply", ScoreDelta: 0},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Generate implements Client
func (m *MockClient) Generate(ctx context.Context, apiKeys map[string]string, systemPrompt string, messages []Message) (*Reply, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	if PickProvider(apiKeys) == "" {
		return nil, ErrNoAPIKeys
	}
	m.LastSystemPrompt = systemPrompt
	m.LastMessages = messages
	return m.reply, nil
}

var _ Client = (*MockClient)(nil)
