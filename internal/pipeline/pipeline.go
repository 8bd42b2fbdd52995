package pipeline

import (
	"log/slog"
	"sync"

	"github.com/spboyer/socialcc/internal/utils"
)

// Stage names, as reported in progress events and logs.
const (
	StagePrepare      = "prepare"
	StageDialogue     = "dialogue"
	StageClean        = "clean"
	StageJudgePrompts = "judge-prompts"
	StageJudge        = "judge"
	StageMerge        = "merge"
	StageResult       = "result"
)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventStageStart    EventType = "stage_start"
	EventRowComplete   EventType = "row_complete"
	EventStageComplete EventType = "stage_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType EventType
	Stage     string
	// Detail is the rubric for judge events.
	Detail string
	DataID string
	Row    int
	Total  int
	Err    error
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// Pipeline runs stages against one Layout.
type Pipeline struct {
	layout *Layout
	logger *slog.Logger

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgressListener registers a listener for progress events.
func WithProgressListener(l ProgressListener) Option {
	return func(p *Pipeline) {
		p.listeners = append(p.listeners, l)
	}
}

// New creates a pipeline over layout.
func New(layout *Layout, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = utils.Discard()
	}
	p := &Pipeline{layout: layout, logger: logger}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Layout returns the file layout the pipeline works on.
func (p *Pipeline) Layout() *Layout {
	return p.layout
}

func (p *Pipeline) notify(event ProgressEvent) {
	p.progressMu.Lock()
	defer p.progressMu.Unlock()

	for _, l := range p.listeners {
		l(event)
	}
}
