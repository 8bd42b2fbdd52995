// Package wizard asks the questions behind `socialcc init`.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/socialcc/internal/llm"
	"github.com/spboyer/socialcc/internal/projectconfig"
	"golang.org/x/term"
)

// Answers holds the fields collected by the init wizard.
type Answers struct {
	ReviewerModel   string
	ReviewerEngine  string
	ReviewerBaseURL string
	WriterModel     string
	JudgeModel      string
	DataDir         string
	OutputDir       string
}

// DefaultAnswers pre-fills the form from the built-in defaults.
func DefaultAnswers() Answers {
	return Answers{
		ReviewerEngine: llm.EngineOpenAI,
		WriterModel:    projectconfig.DefaultWriterModel,
		JudgeModel:     projectconfig.DefaultJudgeModel,
		DataDir:        projectconfig.DefaultDataDir,
		OutputDir:      projectconfig.DefaultOutputDir,
	}
}

// Run shows the init form on out, reading answers from in. Fields start
// from defaults.
func Run(in io.Reader, out io.Writer, defaults Answers) (*Answers, error) {
	a := defaults

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Model under evaluation").
				Description("Agent 2, e.g. llama3:8b or gpt-4o-mini").
				Placeholder("llama3:8b").
				Value(&a.ReviewerModel).
				Validate(requireValue("model under evaluation")),
			huh.NewSelect[string]().
				Title("Engine for the model under evaluation").
				Options(
					huh.NewOption("OpenAI-compatible (OpenAI, Ollama)", llm.EngineOpenAI),
					huh.NewOption("Azure OpenAI", llm.EngineAzureOpenAI),
					huh.NewOption("GitHub Copilot", llm.EngineCopilot),
					huh.NewOption("Mock (offline)", llm.EngineMock),
				).
				Value(&a.ReviewerEngine),
			huh.NewInput().
				Title("Base URL").
				Description("Leave empty for the engine default").
				Placeholder(projectconfig.DefaultOllamaURL).
				Value(&a.ReviewerBaseURL),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Writer model").
				Description("Agent 1, who drives the dialogue").
				Value(&a.WriterModel).
				Validate(requireValue("writer model")),
			huh.NewInput().
				Title("Judge model").
				Value(&a.JudgeModel).
				Validate(requireValue("judge model")),
			huh.NewInput().
				Title("Data directory").
				Description("Holds SocialCC.csv").
				Value(&a.DataDir),
			huh.NewInput().
				Title("Output directory").
				Value(&a.OutputDir),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	a.trim()
	return &a, nil
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func (a *Answers) trim() {
	for _, s := range []*string{&a.ReviewerModel, &a.ReviewerEngine, &a.ReviewerBaseURL, &a.WriterModel, &a.JudgeModel, &a.DataDir, &a.OutputDir} {
		*s = strings.TrimSpace(*s)
	}
}

// Config turns the answers into a project config on top of the defaults.
func (a *Answers) Config() *projectconfig.ProjectConfig {
	cfg := projectconfig.New()

	if a.DataDir != "" {
		cfg.Paths.Data = a.DataDir
	}
	if a.OutputDir != "" {
		cfg.Paths.Output = a.OutputDir
	}
	if a.WriterModel != "" {
		cfg.Writer.Model = a.WriterModel
	}
	if a.JudgeModel != "" {
		cfg.Judge.Model = a.JudgeModel
	}

	cfg.Reviewer.Model = a.ReviewerModel
	if a.ReviewerEngine != "" {
		cfg.Reviewer.Engine = a.ReviewerEngine
	}
	cfg.Reviewer.BaseURL = a.ReviewerBaseURL

	switch cfg.Reviewer.Engine {
	case llm.EngineOpenAI:
		cfg.Reviewer.Auth = llm.AuthAPIKey
		if cfg.Reviewer.BaseURL == "" {
			cfg.Reviewer.BaseURL = projectconfig.DefaultOllamaURL
			cfg.Reviewer.APIKey = projectconfig.DefaultOllamaAPIKey
		}
	case llm.EngineCopilot, llm.EngineMock:
		cfg.Reviewer.Auth = llm.AuthNone
	}

	return cfg
}

// Render returns the YAML written to .socialcc.yaml.
func Render(a *Answers) ([]byte, error) {
	data, err := a.Config().Marshal()
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", projectconfig.FileName, err)
	}
	return data, nil
}
