package prompts

import (
	"strings"
	"testing"

	"github.com/spboyer/socialcc/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(third string) models.ScenarioRecord {
	return models.ScenarioRecord{
		DataID:            "42",
		Writer:            models.Agent{Name: "Kenji", Background: "A Japanese office worker."},
		Reviewer:          models.Agent{Name: "Maria", Background: "A Brazilian exchange student."},
		Third:             models.Agent{Name: third, Background: "A colleague."},
		Cast:              models.CastFor(third),
		Relationship:      "Coworkers",
		Scenario:          "A welcome dinner in Tokyo.",
		Event1:            "Ordering food.",
		Event2:            "Paying the bill.",
		CulturalKnowledge: "Tipping is not customary in Japan.",
		CulturalValue:     "Respect for hosts.",
		WriterGoals:       [2]string{"Order dinner", "Split the bill"},
		ReviewerGoals:     [2]string{"Enjoy the meal", "Thank the host"},
	}
}

func TestBuildAgentPrompt_TwoPartyVariant(t *testing.T) {
	rec := sampleRecord("")
	require.Equal(t, models.CastTwoParty, rec.Cast)

	pair, err := BuildPromptPair(rec)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(pair.Writer, "# Task\nAct like Kenji in the scenario and interact with Maria"))
	assert.Contains(t, pair.Writer, "# Relationship\nCoworkers")
	assert.NotContains(t, pair.Writer, "Character 3")

	assert.Contains(t, pair.Reviewer, "Act like Maria who has a specific cultural background")
	assert.NotContains(t, pair.Reviewer, "Character 3")
}

func TestBuildAgentPrompt_ThreePartyVariant(t *testing.T) {
	rec := sampleRecord("Yuki")
	require.Equal(t, models.CastThreeParty, rec.Cast)

	pair, err := BuildPromptPair(rec)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(pair.Writer, "# Task\nAct as Kenji in the scenario"))
	assert.NotContains(t, pair.Writer, "# Relationship")
	assert.Contains(t, pair.Writer, "- Character 3: A colleague.")

	assert.True(t, strings.HasPrefix(pair.Reviewer, "# Task\nAct as Maria in the scenario and interact with Kenji"))
	assert.NotContains(t, pair.Reviewer, "who has a specific cultural background")
}

func TestBuildAgentPrompt_WriterSections(t *testing.T) {
	rec := sampleRecord("")

	got, err := BuildAgentPrompt(&rec, models.RoleWriter)
	require.NoError(t, err)

	assert.Contains(t, got, "- Goal 1: Order dinner\n- Goal 2: Split the bill")
	assert.Contains(t, got, "test Maria's cultural intelligence")
	assert.Contains(t, got, `end the dialogue with "OK. GOOD BYE!".`)
	assert.True(t, strings.HasSuffix(got, `8. Your first sentence should be "Hello".`))
	assert.NotContains(t, got, "Enjoy the meal")
}

func TestBuildAgentPrompt_ReviewerGoals(t *testing.T) {
	rec := sampleRecord("")

	got, err := BuildAgentPrompt(&rec, models.RoleReviewer)
	require.NoError(t, err)

	assert.Contains(t, got, "- Goal 1: Enjoy the meal\n- Goal 2: Thank the host")
	assert.NotContains(t, got, "# Cultural Knowledge")
	assert.True(t, strings.HasSuffix(got, `end the dialogue promptly with " GOOD BYE!".`))
}

func TestBuildAgentPrompt_EmptyFieldsRenderAsEmptySegments(t *testing.T) {
	rec := models.ScenarioRecord{
		Writer:   models.Agent{Name: "A"},
		Reviewer: models.Agent{Name: "B"},
		Cast:     models.CastTwoParty,
	}

	got, err := BuildAgentPrompt(&rec, models.RoleWriter)
	require.NoError(t, err)

	assert.Contains(t, got, "# Scenario\n\n\n# Events\n- Event 1: \n- Event 2: \n")
	assert.Contains(t, got, "# Relationship\n\n\n# Cultural Knowledge")
}

func TestBuildAgentPrompt_UnknownInputs(t *testing.T) {
	rec := sampleRecord("")

	_, err := BuildAgentPrompt(&rec, models.AgentRole("judge"))
	require.Error(t, err)

	rec.Cast = ""
	_, err = BuildAgentPrompt(&rec, models.RoleWriter)
	require.Error(t, err)
}
