package pipeline

import (
	"github.com/spboyer/socialcc/internal/dataset"
	"github.com/spboyer/socialcc/internal/prompts"
)

// PrepareResult describes the two agent prompt files.
type PrepareResult struct {
	WriterPrompts   string
	ReviewerPrompts string
	Rows            int
}

// Prepare reads the benchmark file and writes one system prompt per
// scenario for each agent.
func (p *Pipeline) Prepare() (*PrepareResult, error) {
	l := p.layout
	p.notify(ProgressEvent{EventType: EventStageStart, Stage: StagePrepare})

	if err := dataset.RequireFiles(l.Source); err != nil {
		return nil, err
	}

	records, err := dataset.ReadSource(l.Source)
	if err != nil {
		return nil, err
	}

	writerRows := make([]dataset.StageRow, 0, len(records))
	reviewerRows := make([]dataset.StageRow, 0, len(records))

	for i := range records {
		pair, err := prompts.BuildPromptPair(records[i])
		if err != nil {
			return nil, err
		}
		writerRows = append(writerRows, dataset.StageRow{Record: pair.Record, Payload: pair.Writer})
		reviewerRows = append(reviewerRows, dataset.StageRow{Record: pair.Record, Payload: pair.Reviewer})
	}

	if err := dataset.WriteStage(l.WriterPrompts, PromptColumn, writerRows); err != nil {
		return nil, err
	}
	if err := dataset.WriteStage(l.ReviewerPrompts, PromptColumn, reviewerRows); err != nil {
		return nil, err
	}

	p.logger.Info("prepared agent prompts", "rows", len(records), "writer", l.WriterPrompts, "reviewer", l.ReviewerPrompts)
	p.notify(ProgressEvent{EventType: EventStageComplete, Stage: StagePrepare, Total: len(records)})

	return &PrepareResult{WriterPrompts: l.WriterPrompts, ReviewerPrompts: l.ReviewerPrompts, Rows: len(records)}, nil
}
