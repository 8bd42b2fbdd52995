package wizard

import (
	"testing"

	"github.com/spboyer/socialcc/internal/llm"
	"github.com/spboyer/socialcc/internal/projectconfig"
	"github.com/spboyer/socialcc/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAnswersConfig_OllamaDefaults(t *testing.T) {
	a := DefaultAnswers()
	a.ReviewerModel = "llama3:8b"

	cfg := a.Config()
	assert.Equal(t, "llama3:8b", cfg.Reviewer.Model)
	assert.Equal(t, llm.EngineOpenAI, cfg.Reviewer.Engine)
	assert.Equal(t, llm.AuthAPIKey, cfg.Reviewer.Auth)
	assert.Equal(t, projectconfig.DefaultOllamaURL, cfg.Reviewer.BaseURL)
	assert.Equal(t, projectconfig.DefaultOllamaAPIKey, cfg.Reviewer.APIKey)
	assert.Equal(t, projectconfig.DefaultWriterModel, cfg.Writer.Model)
	assert.Equal(t, projectconfig.DefaultJudgeModel, cfg.Judge.Model)
}

func TestAnswersConfig_Engines(t *testing.T) {
	tests := []struct {
		engine  string
		auth    string
		baseURL string
	}{
		{llm.EngineAzureOpenAI, llm.AuthAAD, ""},
		{llm.EngineCopilot, llm.AuthNone, ""},
		{llm.EngineMock, llm.AuthNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			a := DefaultAnswers()
			a.ReviewerModel = "m"
			a.ReviewerEngine = tt.engine

			cfg := a.Config()
			assert.Equal(t, tt.engine, cfg.Reviewer.Engine)
			assert.Equal(t, tt.auth, cfg.Reviewer.Auth)
			assert.Equal(t, tt.baseURL, cfg.Reviewer.BaseURL)
		})
	}
}

func TestAnswersConfig_CustomPaths(t *testing.T) {
	a := DefaultAnswers()
	a.ReviewerModel = "gpt-4o-mini"
	a.ReviewerBaseURL = "https://api.openai.com/v1"
	a.DataDir = "bench"
	a.OutputDir = "runs"

	cfg := a.Config()
	assert.Equal(t, "bench", cfg.Paths.Data)
	assert.Equal(t, "runs", cfg.Paths.Output)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Reviewer.BaseURL)
	assert.Empty(t, cfg.Reviewer.APIKey)
}

func TestRender_IsValidConfig(t *testing.T) {
	a := DefaultAnswers()
	a.ReviewerModel = "llama3:8b"

	data, err := Render(&a)
	require.NoError(t, err)

	assert.Empty(t, validation.ValidateConfigBytes(data))

	var back projectconfig.ProjectConfig
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, "llama3:8b", back.Reviewer.Model)
	assert.Equal(t, projectconfig.DefaultOllamaURL, back.Reviewer.BaseURL)
}

func TestRequireValue(t *testing.T) {
	check := requireValue("judge model")
	assert.NoError(t, check("gpt-4o"))
	assert.EqualError(t, check("   "), "judge model is required")
}
