package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaders(t *testing.T) {
	assert.Len(t, SourceHeader, 22)
	assert.Len(t, MetadataHeader, 21)
	assert.Equal(t, 22, RowWidth)
	assert.Equal(t, "Relationship", SourceHeader[12])
	assert.NotContains(t, MetadataHeader, "Relationship")
}

func TestRecordFromStageRow_RoundTrip(t *testing.T) {
	row := make([]string, RowWidth)
	for i := range MetadataHeader {
		row[i] = MetadataHeader[i] + "-v"
	}
	row[ColPayload] = "payload"

	rec := RecordFromStageRow(row)
	assert.Equal(t, "Data_ID-v", rec.DataID)
	assert.Equal(t, "Agent_3-v", rec.Third.Name)
	assert.Equal(t, CastThreeParty, rec.Cast)
	assert.Equal(t, [2]string{"Agent_2_Goal_1-v", "Agent_2_Goal_2-v"}, rec.ReviewerGoals)
	assert.Equal(t, row[:ColPayload], rec.Metadata())
}

func TestCastFor(t *testing.T) {
	assert.Equal(t, CastTwoParty, CastFor(""))
	assert.Equal(t, CastThreeParty, CastFor("Carol"))
}

func TestRubricColumns(t *testing.T) {
	assert.Equal(t, "Awareness_prompt", RubricAwareness.PromptColumn())
	assert.Equal(t, "Knowledge_output", RubricKnowledge.OutputColumn())
	assert.Equal(t, "Value_Score", RubricValue.ScoreColumn())
	assert.Equal(t, "Behavior Performance", RubricBehavior.SummaryColumn())

	assert.Equal(t, ScoreRange{Min: 0, Max: 1}, RubricAwareness.Range())
	assert.Equal(t, ScoreRange{Min: 0, Max: 2}, RubricKnowledge.Range())
	assert.Equal(t, ScoreRange{Min: -1, Max: 2}, RubricBehavior.Range())
}

func TestDialogueTranscript(t *testing.T) {
	var tr DialogueTranscript

	cell, err := tr.MarshalCell()
	require.NoError(t, err)
	assert.Equal(t, "[]", cell)

	tr.Append(RoleWriter, "Hi")
	tr.Append(RoleWriter.Other(), "Good bye")

	assert.Equal(t, Turn{Role: RoleReviewer, Content: "Good bye"}, tr.Turns[1])
	assert.Equal(t, 2, tr.Len())

	cell, err = tr.MarshalCell()
	require.NoError(t, err)
	assert.Equal(t, `[{"role":"writer","content":"Hi"},{"role":"reviewer","content":"Good bye"}]`, cell)
}
