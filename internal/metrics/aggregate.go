package metrics

import (
	"math"
	"strconv"
	"strings"

	"github.com/spboyer/socialcc/internal/models"
)

// ColumnStats summarises one score column.
type ColumnStats struct {
	// N counts the cells that parsed as numbers.
	N int `json:"n"`
	// Skipped counts empty or unparsable cells.
	Skipped int     `json:"skipped"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	CILow   float64 `json:"ci95_low"`
	CIHigh  float64 `json:"ci95_high"`
}

// ParseScore parses a score cell. Empty, non-numeric and non-finite cells
// are rejected.
func ParseScore(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Column computes stats over the parseable cells of one column. A column
// with no parseable cells has a mean of 0.
func Column(cells []string) ColumnStats {
	values := make([]float64, 0, len(cells))
	var skipped int

	for _, c := range cells {
		v, ok := ParseScore(c)
		if !ok {
			skipped++
			continue
		}
		values = append(values, v)
	}

	low, high := ConfidenceInterval95(values)

	return ColumnStats{
		N:       len(values),
		Skipped: skipped,
		Mean:    Mean(values),
		StdDev:  StdDev(values),
		CILow:   low,
		CIHigh:  high,
	}
}

// Summarize aggregates every rubric's score column into a ResultSummary.
// Rubrics absent from columns get a zero mean.
func Summarize(model string, columns map[models.Rubric][]string) (*models.ResultSummary, map[models.Rubric]ColumnStats) {
	summary := &models.ResultSummary{
		Model: model,
		Means: make(map[models.Rubric]float64, len(models.Rubrics)),
	}
	stats := make(map[models.Rubric]ColumnStats, len(models.Rubrics))

	for _, r := range models.Rubrics {
		s := Column(columns[r])
		stats[r] = s
		summary.Means[r] = s.Mean
	}

	return summary, stats
}
