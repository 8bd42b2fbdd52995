// Package transcript turns stored dialogue cells into the numbered
// "Round k" text the judge reads.
package transcript

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spboyer/socialcc/internal/models"
)

// Clean renders a stored transcript cell. Each writer/reviewer pair
// becomes one round; an unpaired final turn gets a round of its own. A
// cell that is not a JSON list of turns is returned as trimmed raw text.
func Clean(cell string) string {
	if strings.TrimSpace(cell) == "" {
		return ""
	}

	turns, ok := parseTurns(cell)
	if !ok {
		return trimRaw(cell)
	}

	return Format(turns)
}

// Format renders turns without the parse step.
func Format(turns []models.Turn) string {
	var sb strings.Builder

	for i := 0; i < len(turns); i += 2 {
		fmt.Fprintf(&sb, "Round %d:\n", i/2+1)
		fmt.Fprintf(&sb, "Agent 1:\n%s\n", turns[i].Content)
		if i+1 < len(turns) {
			fmt.Fprintf(&sb, "Agent 2:\n%s\n", turns[i+1].Content)
		}
	}

	return sb.String()
}

func parseTurns(cell string) ([]models.Turn, bool) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(cell), &raw); err != nil {
		return nil, false
	}

	turns := make([]models.Turn, 0, len(raw))
	for _, r := range raw {
		var turn models.Turn
		if err := json.Unmarshal(r, &turn); err != nil {
			// a list of bare strings still counts as turns
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				return nil, false
			}
			turn.Content = s
		}
		turns = append(turns, turn)
	}

	return turns, true
}

func trimRaw(cell string) string {
	s := strings.TrimSpace(cell)
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			s = s[1 : len(s)-1]
		}
	}
	return s
}
