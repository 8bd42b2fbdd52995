package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spboyer/socialcc/internal/models"
)

// sanitize replaces characters that are unsafe in filenames.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "unnamed"
	}
	return s
}

// Archive is the JSON sidecar kept for one generated dialogue.
type Archive struct {
	DataID        string        `json:"data_id"`
	WriterModel   string        `json:"writer_model"`
	ReviewerModel string        `json:"reviewer_model"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   time.Time     `json:"completed_at"`
	DurationMs    int64         `json:"duration_ms"`
	Turns         []models.Turn `json:"turns"`
	ErrorMsg      string        `json:"error,omitempty"`
}

// NewArchive captures a finished dialogue row.
func NewArchive(row *models.DialogueRow, writerModel, reviewerModel string, started time.Time, completed time.Time) *Archive {
	a := &Archive{
		DataID:        row.Record.DataID,
		WriterModel:   writerModel,
		ReviewerModel: reviewerModel,
		StartedAt:     started,
		CompletedAt:   completed,
		DurationMs:    completed.Sub(started).Milliseconds(),
		Turns:         row.Transcript.Turns,
	}
	if a.Turns == nil {
		a.Turns = []models.Turn{}
	}
	if row.Err != nil {
		a.ErrorMsg = row.Err.Error()
	}
	return a
}

// Filename returns the archive filename for a scenario.
func Filename(dataID string, ts time.Time) string {
	return fmt.Sprintf("%s-%s.json", sanitizeName(dataID), ts.Format("20060102-150405"))
}

// Write serializes an Archive and writes it to dir.
func Write(dir string, a *Archive) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	name := Filename(a.DataID, a.StartedAt)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return path, nil
}
