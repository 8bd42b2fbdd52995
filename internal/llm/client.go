// Package llm talks to chat-completion endpoints on behalf of the dialogue
// agents and the judge.
package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// Chat message roles, as the chat-completions API spells them.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single completion call.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature *float64
	// Extra is merged into the request body as-is (e.g. Ollama "options").
	Extra map[string]any
}

//go:generate go tool mockgen -destination=llmmock/chat_client.go -package=llmmock github.com/spboyer/socialcc/internal/llm ChatClient

// ChatClient sends one chat request and returns the assistant's reply.
type ChatClient interface {
	Complete(ctx context.Context, req *ChatRequest) (string, error)
}

// Engine names accepted in configuration.
const (
	EngineAzureOpenAI = "azure-openai"
	EngineOpenAI      = "openai"
	EngineCopilot     = "copilot-sdk"
	EngineMock        = "mock"
)

// NewClient builds the client for ep. The returned cleanup func is never nil.
func NewClient(ep *Endpoint, logger *slog.Logger) (ChatClient, func(), error) {
	noop := func() {}

	switch ep.Engine {
	case EngineAzureOpenAI, EngineOpenAI:
		c, err := NewOpenAIClient(ep, nil)
		if err != nil {
			return nil, noop, err
		}
		return c, noop, nil
	case EngineCopilot:
		c := NewCopilotClient(nil, logger)
		return c, func() {
			if err := c.Close(); err != nil {
				logger.Warn("failed to stop copilot client", "error", err)
			}
		}, nil
	case EngineMock:
		return NewMockClient(ep.Model), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown engine type: %s", ep.Engine)
	}
}
