package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spboyer/socialcc/internal/models"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"17", "17"},
		{"Scenario 17", "scenario-17"},
		{"a/b:c", "abc"},
		{"", "unnamed"},
		{"  spaces  ", "spaces"},
		{"Mixed-Case_ID", "mixed-case_id"},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			got := sanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 6, 15, 14, 30, 45, 0, time.UTC)
	got := Filename("42", ts)
	want := "42-20250615-143045.json"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "transcripts")

	row := &models.DialogueRow{
		Record: models.ScenarioRecord{DataID: "42"},
		Err:    errors.New("turn 3 failed"),
	}
	row.Transcript.Append(models.RoleWriter, "Hello")
	row.Transcript.Append(models.RoleReviewer, "Hi")

	start := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	a := NewArchive(row, "gpt-4o", "llama3:8b", start, start.Add(1500*time.Millisecond))

	path, err := Write(dir, a)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "42-20250615-140000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Archive
	require.NoError(t, json.Unmarshal(data, &got))

	want := Archive{
		DataID:        "42",
		WriterModel:   "gpt-4o",
		ReviewerModel: "llama3:8b",
		StartedAt:     start,
		CompletedAt:   start.Add(1500 * time.Millisecond),
		DurationMs:    1500,
		Turns: []models.Turn{
			{Role: models.RoleWriter, Content: "Hello"},
			{Role: models.RoleReviewer, Content: "Hi"},
		},
		ErrorMsg: "turn 3 failed",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("archive mismatch (-want +got):\n%s", diff)
	}
}

func TestNewArchive_EmptyTranscript(t *testing.T) {
	a := NewArchive(&models.DialogueRow{}, "w", "r", time.Time{}, time.Time{})
	require.NotNil(t, a.Turns)
	require.Empty(t, a.ErrorMsg)
}
