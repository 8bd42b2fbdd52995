package models

// Rubric is one of the four judged dimensions.
type Rubric string

const (
	RubricAwareness Rubric = "awareness"
	RubricKnowledge Rubric = "knowledge"
	RubricValue     Rubric = "value"
	RubricBehavior  Rubric = "behavior"
)

// Rubrics lists every rubric in file/column order.
var Rubrics = []Rubric{RubricAwareness, RubricKnowledge, RubricValue, RubricBehavior}

// Title returns the capitalised rubric name used in column headers.
func (r Rubric) Title() string {
	switch r {
	case RubricAwareness:
		return "Awareness"
	case RubricKnowledge:
		return "Knowledge"
	case RubricValue:
		return "Value"
	case RubricBehavior:
		return "Behavior"
	default:
		return string(r)
	}
}

// PromptColumn is the judge-prompt column for the rubric, e.g. "Awareness_prompt".
func (r Rubric) PromptColumn() string { return r.Title() + "_prompt" }

// OutputColumn is the raw judge-output column, e.g. "Awareness_output".
func (r Rubric) OutputColumn() string { return r.Title() + "_output" }

// ScoreColumn is the parsed score column, e.g. "Awareness_Score".
func (r Rubric) ScoreColumn() string { return r.Title() + "_Score" }

// SummaryColumn is the result-file column, e.g. "Awareness Performance".
func (r Rubric) SummaryColumn() string { return r.Title() + " Performance" }

// ScoreRange is the inclusive range a rubric's scale defines.
type ScoreRange struct {
	Min, Max float64
}

// Range returns the scale the rubric prompt asks the judge to use.
// Extraction clamps to GlobalScoreRange regardless.
func (r Rubric) Range() ScoreRange {
	switch r {
	case RubricKnowledge:
		return ScoreRange{Min: 0, Max: 2}
	case RubricBehavior:
		return ScoreRange{Min: -1, Max: 2}
	default:
		return ScoreRange{Min: 0, Max: 1}
	}
}

// GlobalScoreRange bounds every extracted score.
var GlobalScoreRange = ScoreRange{Min: -1, Max: 2}

// ResultSummary is the per-model mean of every score column.
type ResultSummary struct {
	Model string             `json:"model"`
	Means map[Rubric]float64 `json:"means"`
}
