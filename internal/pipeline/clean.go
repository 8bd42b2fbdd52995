package pipeline

import (
	"github.com/spboyer/socialcc/internal/dataset"
	"github.com/spboyer/socialcc/internal/transcript"
)

// CleanResult summarises a clean pass.
type CleanResult struct {
	Path    string
	Rows    int
	Skipped []int
}

// CleanDialogues rewrites each stored transcript as numbered rounds.
func (p *Pipeline) CleanDialogues() (*CleanResult, error) {
	l := p.layout
	p.notify(ProgressEvent{EventType: EventStageStart, Stage: StageClean})

	if err := dataset.RequireFiles(l.Dialogue); err != nil {
		return nil, err
	}

	sf, err := dataset.ReadStage(l.Dialogue)
	if err != nil {
		return nil, err
	}

	for _, line := range sf.Skipped {
		p.logger.Warn("skipping short dialogue row", "line", line)
	}

	rows := make([]dataset.StageRow, 0, len(sf.Rows))
	for _, r := range sf.Rows {
		rows = append(rows, dataset.StageRow{Line: r.Line, Record: r.Record, Payload: transcript.Clean(r.Payload)})
	}

	if err := dataset.WriteStage(l.CleanDialogue, CleanDialogueColumn, rows); err != nil {
		return nil, err
	}

	p.logger.Info("cleaned dialogues", "path", l.CleanDialogue, "rows", len(rows), "skipped", len(sf.Skipped))
	p.notify(ProgressEvent{EventType: EventStageComplete, Stage: StageClean, Total: len(rows)})

	return &CleanResult{Path: l.CleanDialogue, Rows: len(rows), Skipped: sf.Skipped}, nil
}
