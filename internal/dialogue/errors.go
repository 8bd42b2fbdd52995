package dialogue

import (
	"fmt"

	"github.com/spboyer/socialcc/internal/models"
)

// TurnError reports a chat call that failed mid-dialogue. The dialogue
// for that scenario stops at the failing turn.
type TurnError struct {
	DataID string
	// Turn is the zero-based index of the turn that could not be produced.
	Turn int
	Role models.AgentRole
	Err  error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("dialogue %s: turn %d (%s) failed: %v", e.DataID, e.Turn, e.Role, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}
