package pipeline

import (
	"errors"
	"io/fs"

	"github.com/spboyer/socialcc/internal/dataset"
	"github.com/spboyer/socialcc/internal/judge"
	"github.com/spboyer/socialcc/internal/models"
)

// MergeResult summarises the evaluation file.
type MergeResult struct {
	Path string
	Rows int
	// Missing lists rubrics whose output file did not exist.
	Missing []models.Rubric
}

// Merge extracts a score from every judge output and joins the four
// rubrics into one evaluation file keyed by Data_ID. Rows come from the
// awareness file; a rubric without an output file contributes empty
// scores.
func (p *Pipeline) Merge() (*MergeResult, error) {
	l := p.layout
	p.notify(ProgressEvent{EventType: EventStageStart, Stage: StageMerge})

	base := l.JudgeOutputs[models.RubricAwareness]
	if err := dataset.RequireFiles(base); err != nil {
		return nil, err
	}

	res := &MergeResult{Path: l.Evaluation}
	scores := make(map[models.Rubric]map[string]string, len(models.Rubrics))

	for _, r := range models.Rubrics {
		byID, err := readScores(l.JudgeOutputs[r], r)
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("judge output missing, scores left empty", "rubric", r, "path", l.JudgeOutputs[r])
			res.Missing = append(res.Missing, r)
			continue
		}
		if err != nil {
			return nil, err
		}
		scores[r] = byID
	}

	tbl, err := dataset.ReadTable(base)
	if err != nil {
		return nil, err
	}

	// First occurrence fixes the position, the last one supplies metadata.
	var order []string
	meta := make(map[string][]string)
	for _, rec := range tbl.Records {
		if len(rec) < len(models.MetadataHeader) {
			continue
		}
		id := rec[models.ColDataID]
		if _, seen := meta[id]; !seen {
			order = append(order, id)
		}
		meta[id] = rec[:len(models.MetadataHeader)]
	}

	header := append([]string{}, models.MetadataHeader...)
	for _, r := range models.Rubrics {
		header = append(header, r.ScoreColumn())
	}

	w, err := dataset.Create(l.Evaluation, header)
	if err != nil {
		return nil, err
	}
	defer w.Close() //nolint:errcheck

	for _, id := range order {
		rec := append([]string{}, meta[id]...)
		for _, r := range models.Rubrics {
			rec = append(rec, scores[r][id])
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	res.Rows = len(order)
	p.logger.Info("evaluation merged", "path", l.Evaluation, "rows", res.Rows)
	p.notify(ProgressEvent{EventType: EventStageComplete, Stage: StageMerge, Total: res.Rows})

	return res, nil
}

// readScores maps Data_ID to the extracted score of one rubric's output
// file. Later rows win over earlier ones with the same id.
func readScores(path string, r models.Rubric) (map[string]string, error) {
	tbl, err := dataset.ReadTable(path)
	if err != nil {
		return nil, err
	}
	if err := tbl.Require(models.MetadataHeader[models.ColDataID], r.OutputColumn()); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(tbl.Records))
	for _, rec := range tbl.Records {
		id := tbl.Get(rec, models.MetadataHeader[models.ColDataID])
		out[id] = judge.ScoreOutput(tbl.Get(rec, r.OutputColumn()))
	}
	return out, nil
}
