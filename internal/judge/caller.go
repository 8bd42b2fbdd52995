package judge

import (
	"context"
	"log/slog"
	"time"

	"github.com/spboyer/socialcc/internal/llm"
	"github.com/spboyer/socialcc/internal/utils"
)

// ErrorPrefix marks an output cell whose judge call failed.
const ErrorPrefix = "ERROR: "

// CallerOptions configures a Caller.
type CallerOptions struct {
	// Model is the judge deployment; it is passed through ResolveModel.
	Model string
	// Timeout bounds each call. Zero means no timeout.
	Timeout     time.Duration
	Temperature *float64
}

// Caller sends one rubric prompt at a time to the judge. Calls are
// never retried or batched.
type Caller struct {
	client llm.ChatClient
	opts   CallerOptions
	logger *slog.Logger
}

func NewCaller(client llm.ChatClient, opts CallerOptions, logger *slog.Logger) *Caller {
	opts.Model = ResolveModel(opts.Model)
	if logger == nil {
		logger = utils.Discard()
	}
	return &Caller{client: client, opts: opts, logger: logger}
}

// Model returns the resolved deployment name.
func (c *Caller) Model() string {
	return c.opts.Model
}

// Call sends prompt as a single user message.
func (c *Caller) Call(ctx context.Context, prompt string) (string, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	return c.client.Complete(ctx, &llm.ChatRequest{
		Model:       c.opts.Model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: c.opts.Temperature,
	})
}

// Evaluate is Call with failures folded into the returned text as an
// ERROR marker, so one bad call never stops a batch.
func (c *Caller) Evaluate(ctx context.Context, prompt string) string {
	out, err := c.Call(ctx, prompt)
	if err != nil {
		c.logger.Warn("judge call failed", "model", c.opts.Model, "error", err)
		return ErrorPrefix + err.Error()
	}
	return out
}
