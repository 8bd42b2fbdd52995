package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		wantRows int
		wantCols int
		wantErr  string
	}{
		{
			name:     "happy path 3 rows 3 columns",
			csv:      "Data_ID,Awareness_Score,Value_Score\n1,2,1\n2,,0\n3,-1,ERROR\n",
			wantRows: 3,
			wantCols: 3,
		},
		{
			name:     "single row",
			csv:      "Model,Awareness Performance\ngpt-4o,1.500000\n",
			wantRows: 1,
			wantCols: 2,
		},
		{
			name:     "empty CSV headers only",
			csv:      "Data_ID,Awareness_Score\n",
			wantRows: 0,
		},
		{
			name:    "mismatched column count",
			csv:     "Data_ID,Awareness_Score\n1,2\n3\n",
			wantErr: "row 3 has 1 columns, expected 2",
		},
		{
			name:    "no header",
			csv:     "",
			wantErr: "no header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeCSV(t, dir, "test.csv", tt.csv)

			_, rows, err := LoadCSV(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, rows, tt.wantRows)
			if tt.wantRows > 0 {
				assert.Len(t, rows[0], tt.wantCols)
			}
		})
	}
}

func TestLoadCSV_HappyPathValues(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "eva.csv", "Data_ID,Awareness_Score,Knowledge_Score\n17,2,1\n18,0.5,\n")

	header, rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Data_ID", "Awareness_Score", "Knowledge_Score"}, header)
	require.Len(t, rows, 2)

	assert.Equal(t, "17", rows[0]["Data_ID"])
	assert.Equal(t, "2", rows[0]["Awareness_Score"])
	assert.Equal(t, "0.5", rows[1]["Awareness_Score"])
	assert.Equal(t, "", rows[1]["Knowledge_Score"])
}

func TestLoadCSV_QuotedMultilineCells(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "d.csv", "Data_ID,Dialogue\n1,\"Round 1:\nAgent 1:\nhi, there\n\"\n")

	_, rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Round 1:\nAgent 1:\nhi, there\n", rows[0]["Dialogue"])
}

func TestLoadCSV_FileNotFound(t *testing.T) {
	_, _, err := LoadCSV("/nonexistent/path/data.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: open")
}

func TestRequireColumns(t *testing.T) {
	header := []string{"Data_ID", "Awareness_Score"}

	require.NoError(t, RequireColumns("r.csv", header, "Awareness_Score"))

	err := RequireColumns("r.csv", header, "Awareness_Score", "Value_Score", "Behavior_Score")
	require.ErrorIs(t, err, ErrMissingColumns)

	var mce *MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"Value_Score", "Behavior_Score"}, mce.Missing)
	assert.Equal(t, header, mce.Got)
	assert.Contains(t, err.Error(), "r.csv is missing columns [Value_Score Behavior_Score]")
}

func TestWriter_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evaluation_data", "process", "out.csv")

	w, err := Create(path, []string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"1", "x,y"}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"x,y\"\n", string(data))
}

func TestRequireFiles(t *testing.T) {
	dir := t.TempDir()
	present := writeCSV(t, dir, "present.csv", "a\n")
	missing := filepath.Join(dir, "missing.csv")

	require.NoError(t, RequireFiles(present))

	err := RequireFiles(present, missing)
	require.Error(t, err)
	assert.Equal(t, "input file not found: "+missing, err.Error())
}

func TestColumnIndex(t *testing.T) {
	idx := ColumnIndex([]string{"Model", "Value Performance"})
	assert.Equal(t, map[string]int{"Model": 0, "Value Performance": 1}, idx)
}
