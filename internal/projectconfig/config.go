// Package projectconfig provides the ProjectConfig struct and loader for
// .socialcc.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/socialcc/internal/llm"
	"github.com/spboyer/socialcc/internal/utils"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up from the working
// directory upwards.
const FileName = ".socialcc.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultDataDir   = "data"
	DefaultOutputDir = "."

	DefaultEngine       = llm.EngineAzureOpenAI
	DefaultAuth         = llm.AuthAAD
	DefaultWriterModel  = "gpt-4o"
	DefaultJudgeModel   = "gpt-4o"
	DefaultOllamaURL    = "http://localhost:11434/v1"
	DefaultOllamaAPIKey = "ollama"
)

// PathsConfig holds where stage files are read from and written to.
type PathsConfig struct {
	// Data holds SocialCC.csv and the two agent prompt files.
	Data string `yaml:"data,omitempty"`
	// Output holds dialogue files, evaluation_data/ and result/.
	Output string `yaml:"output,omitempty"`
	// Transcripts, when set, receives one JSON archive per dialogue.
	Transcripts string `yaml:"transcripts,omitempty"`
}

// DialogueConfig tunes dialogue generation.
type DialogueConfig struct {
	MaxTurns       int `yaml:"max_turns,omitempty"`
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// JudgeConfig tunes the judge calls. The endpoint fields are inline.
type JudgeConfig struct {
	llm.Endpoint   `yaml:",inline"`
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// PublishConfig holds where run artifacts are uploaded.
type PublishConfig struct {
	AccountURL string `yaml:"account_url,omitempty"`
	Container  string `yaml:"container,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .socialcc.yaml.
type ProjectConfig struct {
	Paths PathsConfig `yaml:"paths,omitempty"`
	// Writer is Agent 1, who drives the dialogue.
	Writer llm.Endpoint `yaml:"writer,omitempty"`
	// Reviewer is Agent 2, the model under evaluation.
	Reviewer llm.Endpoint   `yaml:"reviewer,omitempty"`
	Judge    JudgeConfig    `yaml:"judge,omitempty"`
	Dialogue DialogueConfig `yaml:"dialogue,omitempty"`
	Publish  PublishConfig  `yaml:"publish,omitempty"`

	// Dir is the directory the config file was found in, or the start
	// directory when none was found. Relative paths resolve against it.
	Dir string `yaml:"-"`
	// File is the path of the loaded config file, empty when defaults
	// were used.
	File string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Data:   DefaultDataDir,
			Output: DefaultOutputDir,
		},
		Writer: llm.Endpoint{
			Engine: DefaultEngine,
			Model:  DefaultWriterModel,
			Auth:   DefaultAuth,
		},
		Reviewer: llm.Endpoint{
			Engine: DefaultEngine,
			Auth:   DefaultAuth,
		},
		Judge: JudgeConfig{
			Endpoint: llm.Endpoint{
				Engine: DefaultEngine,
				Model:  DefaultJudgeModel,
				Auth:   DefaultAuth,
			},
		},
	}
}

// Load finds .socialcc.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", startDir, err)
	}
	cfg.Dir = absStart

	path, data, err := findConfigFile(absStart)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if err := cfg.apply(data); err != nil {
		return nil, err
	}

	cfg.Dir = filepath.Dir(path)
	cfg.File = path
	return cfg, nil
}

// LoadFile reads an explicit config file.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", path, err)
	}

	cfg := New()
	if err := cfg.apply(data); err != nil {
		return nil, err
	}

	cfg.Dir = filepath.Dir(abs)
	cfg.File = abs
	return cfg, nil
}

func (cfg *ProjectConfig) apply(data []byte) error {
	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return nil
}

// findConfigFile walks up from dir looking for .socialcc.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	for range 10 {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Data != "" {
		dst.Paths.Data = src.Paths.Data
	}
	if src.Paths.Output != "" {
		dst.Paths.Output = src.Paths.Output
	}
	if src.Paths.Transcripts != "" {
		dst.Paths.Transcripts = src.Paths.Transcripts
	}

	dst.Writer.Merge(&src.Writer)
	dst.Reviewer.Merge(&src.Reviewer)
	dst.Judge.Endpoint.Merge(&src.Judge.Endpoint)

	if src.Judge.TimeoutSeconds != 0 {
		dst.Judge.TimeoutSeconds = src.Judge.TimeoutSeconds
	}
	if src.Dialogue.MaxTurns != 0 {
		dst.Dialogue.MaxTurns = src.Dialogue.MaxTurns
	}
	if src.Dialogue.TimeoutSeconds != 0 {
		dst.Dialogue.TimeoutSeconds = src.Dialogue.TimeoutSeconds
	}

	if src.Publish.AccountURL != "" {
		dst.Publish.AccountURL = src.Publish.AccountURL
	}
	if src.Publish.Container != "" {
		dst.Publish.Container = src.Publish.Container
	}
}

// DataDir returns the absolute data directory.
func (cfg *ProjectConfig) DataDir() string {
	return utils.ResolvePath(cfg.Paths.Data, cfg.Dir)
}

// OutputDir returns the absolute output directory.
func (cfg *ProjectConfig) OutputDir() string {
	return utils.ResolvePath(cfg.Paths.Output, cfg.Dir)
}

// TranscriptsDir returns the absolute transcript archive directory, or ""
// when archiving is off.
func (cfg *ProjectConfig) TranscriptsDir() string {
	if cfg.Paths.Transcripts == "" {
		return ""
	}
	return utils.ResolvePath(cfg.Paths.Transcripts, cfg.Dir)
}

// ApplyEnv fills endpoint base URLs left empty from AZURE_OPENAI_ENDPOINT
// for Azure engines.
func (cfg *ProjectConfig) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	endpoint := getenv("AZURE_OPENAI_ENDPOINT")
	for _, ep := range []*llm.Endpoint{&cfg.Writer, &cfg.Reviewer, &cfg.Judge.Endpoint} {
		if ep.Engine == llm.EngineAzureOpenAI && ep.BaseURL == "" {
			ep.BaseURL = endpoint
		}
	}
}

// Marshal renders cfg as YAML.
func (cfg *ProjectConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}
