// Package dialogue runs the two-agent conversation for one scenario.
package dialogue

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spboyer/socialcc/internal/llm"
	"github.com/spboyer/socialcc/internal/models"
	"github.com/spboyer/socialcc/internal/utils"
)

// TerminationPhrase ends a dialogue when any turn contains it, compared
// case-insensitively.
const TerminationPhrase = "good bye"

// Participant is the model behind one side of the dialogue.
type Participant struct {
	Client      llm.ChatClient
	Model       string
	Temperature *float64
}

// Options tunes the driver. The zero value runs until a termination turn.
type Options struct {
	// MaxTurns stops the dialogue after this many turns. Zero is unbounded.
	MaxTurns int
	// Timeout bounds each chat call. Zero means no timeout.
	Timeout time.Duration
}

// Driver alternates writer and reviewer turns until one of them says
// good bye.
type Driver struct {
	writer   Participant
	reviewer Participant
	opts     Options
	logger   *slog.Logger
}

func NewDriver(writer, reviewer Participant, opts Options, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Driver{writer: writer, reviewer: reviewer, opts: opts, logger: logger}
}

// Models returns the writer and reviewer model names.
func (d *Driver) Models() (writer, reviewer string) {
	return d.writer.Model, d.reviewer.Model
}

// IsTermination reports whether content closes the dialogue.
func IsTermination(content string) bool {
	return strings.Contains(strings.ToLower(content), TerminationPhrase)
}

// Run plays out the dialogue for pair. A failed chat call ends the
// dialogue early: the returned row keeps the turns produced so far and
// carries a *TurnError in Err.
func (d *Driver) Run(ctx context.Context, pair *models.PromptPair) models.DialogueRow {
	row := models.DialogueRow{Record: pair.Record}
	logger := d.logger.With("data_id", pair.Record.DataID)

	role := models.RoleWriter

	for turn := 0; ; turn++ {
		reply, err := d.call(ctx, role, pair, &row.Transcript)
		if err != nil {
			row.Err = &TurnError{DataID: pair.Record.DataID, Turn: turn, Role: role, Err: err}
			return row
		}

		row.Transcript.Append(role, reply)
		logger.Debug("turn complete", "turn", turn, "role", role, "chars", len(reply))

		if IsTermination(reply) {
			logger.Debug("dialogue terminated", "turns", row.Transcript.Len())
			return row
		}

		if d.opts.MaxTurns > 0 && row.Transcript.Len() >= d.opts.MaxTurns {
			logger.Info("dialogue hit max_turns without good bye", "max_turns", d.opts.MaxTurns)
			return row
		}

		role = role.Other()
	}
}

func (d *Driver) call(ctx context.Context, role models.AgentRole, pair *models.PromptPair, tr *models.DialogueTranscript) (string, error) {
	p, system := d.writer, pair.Writer
	if role == models.RoleReviewer {
		p, system = d.reviewer, pair.Reviewer
	}

	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	return p.Client.Complete(ctx, &llm.ChatRequest{
		Model:       p.Model,
		Messages:    History(role, system, tr),
		Temperature: p.Temperature,
	})
}

// History builds the chat messages role sees: its system prompt, then
// every turn so far with its own turns as assistant messages. The opening
// turn is prompted by an empty user message.
func History(role models.AgentRole, system string, tr *models.DialogueTranscript) []llm.Message {
	msgs := make([]llm.Message, 0, tr.Len()+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})

	if tr.Len() == 0 {
		return append(msgs, llm.Message{Role: llm.RoleUser, Content: ""})
	}

	for _, t := range tr.Turns {
		r := llm.RoleUser
		if t.Role == role {
			r = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: r, Content: t.Content})
	}

	return msgs
}
