package utils

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"regexp"
	"sync"

	copilot "github.com/github/copilot-sdk/go"
)

const (
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// LogOptions configures NewLogger.
type LogOptions struct {
	Level slog.Leveler
	// Color wraps every line in green. Existing ANSI sequences in messages
	// are always stripped.
	Color bool
}

// NewLogger returns a text logger writing to w.
func NewLogger(w io.Writer, opts LogOptions) *slog.Logger {
	buf := &bytes.Buffer{}

	return slog.New(&colorHandler{
		inner: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: opts.Level}),
		state: &handlerState{w: w, buf: buf},
		color: opts.Color,
	})
}

// Discard is a logger that drops everything, for callers that were not
// handed one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type handlerState struct {
	mu  sync.Mutex
	w   io.Writer
	buf *bytes.Buffer
}

type colorHandler struct {
	inner slog.Handler
	state *handlerState
	color bool
}

func (h *colorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *colorHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, StripANSI(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(a)
		return true
	})

	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	h.state.buf.Reset()
	if err := h.inner.Handle(ctx, clean); err != nil {
		return err
	}

	line := bytes.TrimRight(h.state.buf.Bytes(), "\n")

	var out []byte
	if h.color {
		out = append(out, ansiGreen...)
		out = append(out, line...)
		out = append(out, ansiReset...)
	} else {
		out = append(out, line...)
	}
	out = append(out, '\n')

	_, err := h.state.w.Write(out)
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &colorHandler{inner: h.inner.WithAttrs(attrs), state: h.state, color: h.color}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	return &colorHandler{inner: h.inner.WithGroup(name), state: h.state, color: h.color}
}

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// SessionToSlog returns a Copilot session handler that logs each event at
// debug level.
func SessionToSlog(logger *slog.Logger) copilot.SessionEventHandler {
	return func(event copilot.SessionEvent) {
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			return
		}

		attrs := []any{
			"type", event.Type,
		}

		attrs = addIf(attrs, "content", event.Data.Content)
		attrs = addIf(attrs, "deltaContent", event.Data.DeltaContent)
		attrs = addIf(attrs, "reasoningText", event.Data.ReasoningText)

		logger.Debug("Event received", attrs...)
	}
}

func addIf[T any](attrs []any, name string, v *T) []any {
	if v != nil {
		attrs = append(attrs, name)
		attrs = append(attrs, *v)
	}

	return attrs
}
