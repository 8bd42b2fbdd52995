package llm

import (
	"context"
	"fmt"
)

// MockClient is a deterministic offline client used for dry runs and
// tests. Agents exchange two numbered lines and then say good bye; a
// single user message (a judge prompt) gets a fixed score.
type MockClient struct {
	modelID string
}

// NewMockClient creates a new mock client
func NewMockClient(modelID string) *MockClient {
	return &MockClient{modelID: modelID}
}

func (m *MockClient) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var own int
	var sawSystem bool

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleAssistant:
			own++
		case RoleSystem:
			sawSystem = true
		}
	}

	if !sawSystem && len(req.Messages) == 1 {
		return fmt.Sprintf("Mock judgement from %s. Score: 1", m.modelID), nil
	}

	if own >= 2 {
		return "Thank you for your time. Good bye!", nil
	}

	return fmt.Sprintf("Mock reply %d from %s", own+1, m.modelID), nil
}
