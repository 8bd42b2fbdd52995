package pipeline

import (
	"context"
	"strings"

	"github.com/spboyer/socialcc/internal/dataset"
	"github.com/spboyer/socialcc/internal/judge"
	"github.com/spboyer/socialcc/internal/models"
	"github.com/spboyer/socialcc/internal/prompts"
)

// JudgePromptsResult summarises the judge prompt file.
type JudgePromptsResult struct {
	Path    string
	Rows    int
	Skipped []int
}

// BuildJudgePrompts renders the four rubric prompts for every cleaned
// dialogue.
func (p *Pipeline) BuildJudgePrompts() (*JudgePromptsResult, error) {
	l := p.layout
	p.notify(ProgressEvent{EventType: EventStageStart, Stage: StageJudgePrompts})

	if err := dataset.RequireFiles(l.CleanDialogue); err != nil {
		return nil, err
	}

	sf, err := dataset.ReadStage(l.CleanDialogue)
	if err != nil {
		return nil, err
	}

	header := append([]string{}, models.MetadataHeader...)
	for _, r := range models.Rubrics {
		header = append(header, r.PromptColumn())
	}

	w, err := dataset.Create(l.JudgePrompts, header)
	if err != nil {
		return nil, err
	}
	defer w.Close() //nolint:errcheck

	for _, row := range sf.Rows {
		built, err := prompts.BuildJudgePrompts(&row.Record, row.Payload)
		if err != nil {
			return nil, err
		}

		rec := row.Record.Metadata()
		for _, r := range models.Rubrics {
			rec = append(rec, built[r])
		}

		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	p.logger.Info("judge prompts written", "path", l.JudgePrompts, "rows", len(sf.Rows))
	p.notify(ProgressEvent{EventType: EventStageComplete, Stage: StageJudgePrompts, Total: len(sf.Rows)})

	return &JudgePromptsResult{Path: l.JudgePrompts, Rows: len(sf.Rows), Skipped: sf.Skipped}, nil
}

// JudgeResult summarises the judge pass.
type JudgeResult struct {
	Outputs map[models.Rubric]string
	Calls   int
	// Errors counts cells holding an ERROR marker.
	Errors int
}

// Judge sends every rubric prompt to the judge, one call at a time, and
// writes one output file per rubric. A failed call leaves an ERROR marker
// in its cell and the pass continues.
func (p *Pipeline) Judge(ctx context.Context, caller *judge.Caller) (*JudgeResult, error) {
	l := p.layout

	if err := dataset.RequireFiles(l.JudgePrompts); err != nil {
		return nil, err
	}

	tbl, err := dataset.ReadTable(l.JudgePrompts)
	if err != nil {
		return nil, err
	}

	for _, r := range models.Rubrics {
		if err := tbl.Require(r.PromptColumn()); err != nil {
			return nil, err
		}
	}

	res := &JudgeResult{Outputs: make(map[models.Rubric]string, len(models.Rubrics))}

	for _, r := range models.Rubrics {
		if err := p.judgeRubric(ctx, caller, tbl, r, res); err != nil {
			return nil, err
		}
	}

	p.logger.Info("judging complete", "model", caller.Model(), "calls", res.Calls, "errors", res.Errors)
	return res, nil
}

func (p *Pipeline) judgeRubric(ctx context.Context, caller *judge.Caller, tbl *dataset.Table, r models.Rubric, res *JudgeResult) error {
	path := p.layout.JudgeOutputs[r]

	w, err := dataset.Create(path, append(append([]string{}, tbl.Header...), r.OutputColumn()))
	if err != nil {
		return err
	}
	defer w.Close() //nolint:errcheck

	p.notify(ProgressEvent{EventType: EventStageStart, Stage: StageJudge, Detail: string(r), Total: len(tbl.Records)})

	for i, rec := range tbl.Records {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !tbl.Complete(rec) {
			p.logger.Warn("skipping short judge prompt row", "line", i+2, "rubric", r)
			continue
		}

		out := caller.Evaluate(ctx, tbl.Get(rec, r.PromptColumn()))
		res.Calls++
		if strings.HasPrefix(out, judge.ErrorPrefix) {
			res.Errors++
		}

		if err := w.Write(append(append([]string{}, rec[:len(tbl.Header)]...), out)); err != nil {
			return err
		}

		p.notify(ProgressEvent{
			EventType: EventRowComplete,
			Stage:     StageJudge,
			Detail:    string(r),
			DataID:    tbl.Get(rec, models.MetadataHeader[models.ColDataID]),
			Row:       i + 1,
			Total:     len(tbl.Records),
		})
	}

	if err := w.Close(); err != nil {
		return err
	}

	res.Outputs[r] = path
	p.logger.Info("rubric judged", "rubric", r, "path", path)
	p.notify(ProgressEvent{EventType: EventStageComplete, Stage: StageJudge, Detail: string(r), Total: len(tbl.Records)})
	return nil
}
