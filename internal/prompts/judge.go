package prompts

import (
	"fmt"

	"github.com/spboyer/socialcc/internal/models"
)

// judgeInput is the data interpolated into the rubric templates. Only the
// reviewer's goals are shown to the judge.
type judgeInput struct {
	Scenario          string
	Event1            string
	Event2            string
	Dialogue          string
	CulturalKnowledge string
	CulturalValue     string
	Goal1             string
	Goal2             string
}

// BuildJudgePrompts renders one prompt per rubric from a scenario and its
// cleaned transcript.
func BuildJudgePrompts(record *models.ScenarioRecord, dialogue string) (map[models.Rubric]string, error) {
	in := judgeInput{
		Scenario:          record.Scenario,
		Event1:            record.Event1,
		Event2:            record.Event2,
		Dialogue:          dialogue,
		CulturalKnowledge: record.CulturalKnowledge,
		CulturalValue:     record.CulturalValue,
		Goal1:             record.ReviewerGoals[0],
		Goal2:             record.ReviewerGoals[1],
	}

	out := make(map[models.Rubric]string, len(models.Rubrics))
	for _, r := range models.Rubrics {
		p, err := render(fmt.Sprintf("judge_%s.tmpl", r), in)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %s prompt: %w", record.DataID, r, err)
		}
		out[r] = p
	}

	return out, nil
}
