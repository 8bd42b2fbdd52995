// Package prompts renders the natural-language prompts used by the
// pipeline: the two agents' system prompts and the four judge rubrics.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/spboyer/socialcc/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"),
)

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("template: render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func agentTemplate(cast models.CastKind, role models.AgentRole) (string, error) {
	var party string
	switch cast {
	case models.CastTwoParty:
		party = "two_party"
	case models.CastThreeParty:
		party = "three_party"
	default:
		return "", fmt.Errorf("unknown cast %q", cast)
	}

	switch role {
	case models.RoleWriter, models.RoleReviewer:
		return fmt.Sprintf("%s_%s.tmpl", role, party), nil
	default:
		return "", fmt.Errorf("unknown agent role %q", role)
	}
}

// BuildAgentPrompt renders the system prompt for one side of the dialogue.
// The template variant follows record.Cast.
func BuildAgentPrompt(record *models.ScenarioRecord, role models.AgentRole) (string, error) {
	name, err := agentTemplate(record.Cast, role)
	if err != nil {
		return "", err
	}
	return render(name, record)
}

// BuildPromptPair renders both agents' prompts for a record.
func BuildPromptPair(record models.ScenarioRecord) (models.PromptPair, error) {
	writer, err := BuildAgentPrompt(&record, models.RoleWriter)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("scenario %s: writer prompt: %w", record.DataID, err)
	}

	reviewer, err := BuildAgentPrompt(&record, models.RoleReviewer)
	if err != nil {
		return models.PromptPair{}, fmt.Errorf("scenario %s: reviewer prompt: %w", record.DataID, err)
	}

	return models.PromptPair{Record: record, Writer: writer, Reviewer: reviewer}, nil
}
