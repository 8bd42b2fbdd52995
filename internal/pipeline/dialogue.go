package pipeline

import (
	"context"
	"time"

	"github.com/spboyer/socialcc/internal/dataset"
	"github.com/spboyer/socialcc/internal/dialogue"
	"github.com/spboyer/socialcc/internal/transcript"
)

// DialogueResult summarises a dialogue generation pass.
type DialogueResult struct {
	Path string
	Rows int
	// Failures holds one *dialogue.TurnError per aborted dialogue.
	Failures []error
	// Skipped lists prompt file lines that were too short to use.
	Skipped []int
}

// GenerateDialogues runs the driver over every prompt pair, one scenario
// at a time, and writes the transcripts. A dialogue that fails mid-way is
// written with the turns it has and reported in Failures.
func (p *Pipeline) GenerateDialogues(ctx context.Context, driver *dialogue.Driver) (*DialogueResult, error) {
	l := p.layout

	if err := dataset.RequireFiles(l.WriterPrompts, l.ReviewerPrompts); err != nil {
		return nil, err
	}

	pairs, skipped, err := dataset.ReadPromptPairs(l.WriterPrompts, l.ReviewerPrompts)
	if err != nil {
		return nil, err
	}

	for _, line := range skipped {
		p.logger.Warn("skipping short prompt row", "line", line)
	}

	w, err := dataset.Create(l.Dialogue, dataset.StageHeader(DialogueColumn))
	if err != nil {
		return nil, err
	}
	defer w.Close() //nolint:errcheck

	writerModel, reviewerModel := driver.Models()
	res := &DialogueResult{Path: l.Dialogue, Skipped: skipped}
	p.notify(ProgressEvent{EventType: EventStageStart, Stage: StageDialogue, Total: len(pairs)})

	for i := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		started := time.Now()
		row := driver.Run(ctx, &pairs[i])

		if row.Err != nil {
			p.logger.Error("dialogue aborted", "data_id", row.Record.DataID, "turns", row.Transcript.Len(), "error", row.Err)
			res.Failures = append(res.Failures, row.Err)
		}

		cell, err := row.Transcript.MarshalCell()
		if err != nil {
			return nil, err
		}

		if err := w.Write(append(row.Record.Metadata(), cell)); err != nil {
			return nil, err
		}
		res.Rows++

		if l.Transcripts != "" {
			archive := transcript.NewArchive(&row, writerModel, reviewerModel, started, time.Now())
			if _, err := transcript.Write(l.Transcripts, archive); err != nil {
				p.logger.Warn("failed to archive transcript", "data_id", row.Record.DataID, "error", err)
			}
		}

		p.notify(ProgressEvent{
			EventType: EventRowComplete,
			Stage:     StageDialogue,
			DataID:    row.Record.DataID,
			Row:       i + 1,
			Total:     len(pairs),
			Err:       row.Err,
		})
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	p.logger.Info("dialogues written", "path", l.Dialogue, "rows", res.Rows, "failed", len(res.Failures))
	p.notify(ProgressEvent{EventType: EventStageComplete, Stage: StageDialogue, Total: res.Rows})

	return res, nil
}
