package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	copilot "github.com/github/copilot-sdk/go"
	"github.com/spboyer/socialcc/internal/utils"
)

// CopilotClient answers chat requests through the GitHub Copilot SDK. Each
// Complete opens a fresh session and flattens the chat history into a
// single prompt, since a session keeps its own history.
type CopilotClient struct {
	client copilotClient
	logger *slog.Logger

	startOnce sync.Once
	startErr  error
}

// NewCopilotClient creates the client. newClient may be nil, in which case
// the real SDK client is used.
func NewCopilotClient(newClient func(*copilot.ClientOptions) copilotClient, logger *slog.Logger) *CopilotClient {
	if newClient == nil {
		newClient = newCopilotClient
	}

	return &CopilotClient{
		client: newClient(&copilot.ClientOptions{
			LogLevel:  "error",
			AutoStart: copilot.Bool(false),
		}),
		logger: logger,
	}
}

func (c *CopilotClient) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	c.startOnce.Do(func() {
		c.startErr = c.client.Start(ctx)
	})

	if c.startErr != nil {
		return "", fmt.Errorf("copilot failed to start: %w", c.startErr)
	}

	session, err := c.client.CreateSession(ctx, &copilot.SessionConfig{
		Model: req.Model,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	unsubscribe := session.On(utils.SessionToSlog(c.logger))
	defer unsubscribe()

	event, err := session.SendAndWait(ctx, copilot.MessageOptions{
		Prompt: FlattenMessages(req.Messages),
	})
	if err != nil {
		return "", err
	}

	if event == nil || event.Data.Content == nil {
		return "", errors.New("copilot session returned no content")
	}

	return *event.Data.Content, nil
}

// Close stops the underlying Copilot CLI process.
func (c *CopilotClient) Close() error {
	return c.client.Stop()
}

// FlattenMessages renders a chat history as one prompt. A lone user
// message is passed through untouched.
func FlattenMessages(msgs []Message) string {
	if len(msgs) == 1 && msgs[0].Role == RoleUser {
		return msgs[0].Content
	}

	var sb strings.Builder
	var turns int

	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			sb.WriteString(m.Content)
			sb.WriteString("\n\n")
		case RoleAssistant:
			fmt.Fprintf(&sb, "You: %s\n", m.Content)
			turns++
		default:
			if m.Content == "" {
				continue
			}
			fmt.Fprintf(&sb, "Them: %s\n", m.Content)
			turns++
		}
	}

	if turns == 0 {
		sb.WriteString("Start the conversation. Reply with your first message only.")
	} else {
		sb.WriteString("\nReply with your next message only.")
	}

	return sb.String()
}
