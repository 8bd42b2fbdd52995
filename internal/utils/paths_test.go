package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "", ResolvePath("", "/base"))
	assert.Equal(t, "/abs/x.csv", ResolvePath("/abs/x.csv", "/base"))
	assert.Equal(t, filepath.Join("/base", "data", "x.csv"), ResolvePath("data/x.csv", "/base"))
}

func TestSanitizeModelName(t *testing.T) {
	tests := map[string]string{
		"gpt-4o":                     "gpt-4o",
		"llama3:8b":                  "llama3_8b",
		"meta-llama/Llama-3.1-8B:q4": "meta-llama_Llama-3.1-8B_q4",
		"":                           "",
	}

	for in, want := range tests {
		assert.Equal(t, want, SanitizeModelName(in), in)
	}
}

func TestPtr(t *testing.T) {
	v := 0.7
	p := Ptr(v)

	v = 1
	assert.Equal(t, 0.7, *p)
}
