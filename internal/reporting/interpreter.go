// Package reporting renders SocialCC results for people and CI systems.
package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/socialcc/internal/metrics"
	"github.com/spboyer/socialcc/internal/models"
)

// RunReport is one model's aggregated result. Stats is nil when the
// report was loaded back from a result file.
type RunReport struct {
	Path    string
	Summary *models.ResultSummary
	Stats   map[models.Rubric]metrics.ColumnStats
}

// Normalize maps a rubric mean onto 0–1 using the rubric's own scale.
func Normalize(r models.Rubric, mean float64) float64 {
	rng := r.Range()
	if rng.Max == rng.Min {
		return 0
	}
	v := (mean - rng.Min) / (rng.Max - rng.Min)
	return min(max(v, 0), 1)
}

// InterpretScore returns a plain-language label for a rubric mean.
func InterpretScore(r models.Rubric, mean float64) string {
	pct := Normalize(r, mean) * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretCoverage explains how many judge outputs yielded a score.
func InterpretCoverage(s metrics.ColumnStats) string {
	total := s.N + s.Skipped
	switch {
	case total == 0:
		return "No rows were judged."
	case s.Skipped == 0:
		return fmt.Sprintf("Every judge output had a score (%d rows).", total)
	case s.N == 0:
		return fmt.Sprintf("No judge output had a score (%d rows). Check the judge outputs for ERROR cells.", total)
	default:
		return fmt.Sprintf("%d of %d judge outputs had no score and were left out of the mean.", s.Skipped, total)
	}
}

// FormatSummaryReport produces a plain-language report for one run.
func FormatSummaryReport(rep *RunReport) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	fmt.Fprintf(&b, "Model: %s\n", rep.Summary.Model)

	for _, r := range models.Rubrics {
		rng := r.Range()
		mean := rep.Summary.Means[r]
		fmt.Fprintf(&b, "\n%-10s %.6f on [%g, %g]: %s\n", r.Title(), mean, rng.Min, rng.Max, InterpretScore(r, mean))

		if s, ok := rep.Stats[r]; ok {
			if s.N > 1 {
				fmt.Fprintf(&b, "  95%% CI [%.3f, %.3f], std dev %.3f\n", s.CILow, s.CIHigh, s.StdDev)
			}
			fmt.Fprintf(&b, "  %s\n", InterpretCoverage(s))
		}
	}

	return b.String()
}
