package pipeline

import (
	"fmt"

	"github.com/spboyer/socialcc/internal/dataset"
	"github.com/spboyer/socialcc/internal/metrics"
	"github.com/spboyer/socialcc/internal/models"
)

// ResultColumn heads the model name in the result file.
const ResultColumn = "Model"

// ResultOutput is the aggregated score of a run.
type ResultOutput struct {
	Path    string
	Summary *models.ResultSummary
	Stats   map[models.Rubric]metrics.ColumnStats
}

// Result averages every score column of the evaluation file and writes the
// one-row result file. A missing score column fails the stage.
func (p *Pipeline) Result() (*ResultOutput, error) {
	l := p.layout
	p.notify(ProgressEvent{EventType: EventStageStart, Stage: StageResult})

	if err := dataset.RequireFiles(l.Evaluation); err != nil {
		return nil, err
	}

	tbl, err := dataset.ReadTable(l.Evaluation)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(models.Rubrics))
	for _, r := range models.Rubrics {
		cols = append(cols, r.ScoreColumn())
	}
	if err := tbl.Require(cols...); err != nil {
		return nil, err
	}

	columns := make(map[models.Rubric][]string, len(models.Rubrics))
	for _, rec := range tbl.Records {
		for _, r := range models.Rubrics {
			columns[r] = append(columns[r], tbl.Get(rec, r.ScoreColumn()))
		}
	}

	summary, stats := metrics.Summarize(l.Model, columns)

	if err := WriteResult(l.Result, summary); err != nil {
		return nil, err
	}

	for _, r := range models.Rubrics {
		s := stats[r]
		p.logger.Info("rubric performance", "rubric", r, "mean", s.Mean, "n", s.N, "skipped", s.Skipped)
	}
	p.logger.Info("result written", "path", l.Result, "model", l.Model)
	p.notify(ProgressEvent{EventType: EventStageComplete, Stage: StageResult, Total: len(tbl.Records)})

	return &ResultOutput{Path: l.Result, Summary: summary, Stats: stats}, nil
}

// ResultHeader is the header of a result file.
func ResultHeader() []string {
	h := []string{ResultColumn}
	for _, r := range models.Rubrics {
		h = append(h, r.SummaryColumn())
	}
	return h
}

// WriteResult writes summary as a one-row result file with six decimals.
func WriteResult(path string, summary *models.ResultSummary) error {
	w, err := dataset.Create(path, ResultHeader())
	if err != nil {
		return err
	}

	row := []string{summary.Model}
	for _, r := range models.Rubrics {
		row = append(row, fmt.Sprintf("%.6f", summary.Means[r]))
	}

	if err := w.Write(row); err != nil {
		w.Close() //nolint:errcheck
		return err
	}
	return w.Close()
}

// ReadResult loads a result file back into a summary. Only the first data
// row is used.
func ReadResult(path string) (*models.ResultSummary, error) {
	header, rows, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := dataset.RequireColumns(path, header, ResultHeader()...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("result file %s has no rows", path)
	}

	row := rows[0]
	summary := &models.ResultSummary{
		Model: row[ResultColumn],
		Means: make(map[models.Rubric]float64, len(models.Rubrics)),
	}
	for _, r := range models.Rubrics {
		v, ok := metrics.ParseScore(row[r.SummaryColumn()])
		if !ok {
			return nil, fmt.Errorf("result file %s: column %q is not a number", path, r.SummaryColumn())
		}
		summary.Means[r] = v
	}
	return summary, nil
}
