package models

import (
	"encoding/json"
	"fmt"
)

// AgentRole identifies which side of the dialogue produced a turn.
type AgentRole string

const (
	// RoleWriter is Agent 1, who opens the dialogue and probes for cultural conflict.
	RoleWriter AgentRole = "writer"
	// RoleReviewer is Agent 2, the model under evaluation.
	RoleReviewer AgentRole = "reviewer"
)

// Other returns the opposite role.
func (r AgentRole) Other() AgentRole {
	if r == RoleWriter {
		return RoleReviewer
	}
	return RoleWriter
}

// Turn is a single message in a dialogue.
type Turn struct {
	Role    AgentRole `json:"role"`
	Content string    `json:"content"`
}

// DialogueTranscript is the ordered list of turns for one scenario. It is
// only ever appended to while the dialogue runs.
type DialogueTranscript struct {
	Turns []Turn
}

// Append adds a turn to the end of the transcript.
func (t *DialogueTranscript) Append(role AgentRole, content string) {
	t.Turns = append(t.Turns, Turn{Role: role, Content: content})
}

// Len returns the number of turns.
func (t *DialogueTranscript) Len() int {
	return len(t.Turns)
}

// MarshalCell serialises the transcript into a single CSV cell.
func (t *DialogueTranscript) MarshalCell() (string, error) {
	turns := t.Turns
	if turns == nil {
		turns = []Turn{}
	}
	data, err := json.Marshal(turns)
	if err != nil {
		return "", fmt.Errorf("marshalling transcript: %w", err)
	}
	return string(data), nil
}
