package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "eva.csv", "Data_ID,Awareness_output\n1,Score: 1\n2\n3,Score: 0,extra\n")

	tbl, err := ReadTable(path)
	require.NoError(t, err)
	require.Len(t, tbl.Records, 3)

	assert.Equal(t, "Score: 1", tbl.Get(tbl.Records[0], "Awareness_output"))
	assert.Equal(t, "", tbl.Get(tbl.Records[1], "Awareness_output"))
	assert.Equal(t, "", tbl.Get(tbl.Records[0], "Value_output"))

	assert.True(t, tbl.Complete(tbl.Records[0]))
	assert.False(t, tbl.Complete(tbl.Records[1]))
	assert.True(t, tbl.Complete(tbl.Records[2]))

	require.NoError(t, tbl.Require("Data_ID"))
	require.ErrorIs(t, tbl.Require("Data_ID", "Value_output"), ErrMissingColumns)
}
