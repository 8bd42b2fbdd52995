package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialRunError(t *testing.T) {
	err := &PartialRunError{Failed: 2, Total: 10}
	assert.Equal(t, "2 of 10 dialogues were aborted; see the log for the failing turns", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		partial bool
	}{
		{"PartialRunError", &PartialRunError{Failed: 1, Total: 1}, true},
		{"regular error", errors.New("config error"), false},
		{"wrapped PartialRunError", fmt.Errorf("run: %w", &PartialRunError{Failed: 1, Total: 3}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var partial *PartialRunError
			assert.Equal(t, tt.partial, errors.As(tt.err, &partial))
		})
	}
}
