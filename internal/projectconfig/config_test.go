package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/socialcc/internal/llm"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Paths.Data", "data", cfg.Paths.Data)
	assertEqual(t, "Paths.Output", ".", cfg.Paths.Output)
	assertEqual(t, "Paths.Transcripts", "", cfg.Paths.Transcripts)

	assertEqual(t, "Writer.Engine", "azure-openai", cfg.Writer.Engine)
	assertEqual(t, "Writer.Model", "gpt-4o", cfg.Writer.Model)
	assertEqual(t, "Writer.Auth", "aad", cfg.Writer.Auth)

	assertEqual(t, "Reviewer.Engine", "azure-openai", cfg.Reviewer.Engine)
	assertEqual(t, "Reviewer.Model", "", cfg.Reviewer.Model)

	assertEqual(t, "Judge.Model", "gpt-4o", cfg.Judge.Model)
	assertEqualInt(t, "Judge.TimeoutSeconds", 0, cfg.Judge.TimeoutSeconds)

	assertEqualInt(t, "Dialogue.MaxTurns", 0, cfg.Dialogue.MaxTurns)
	assertEqualInt(t, "Dialogue.TimeoutSeconds", 0, cfg.Dialogue.TimeoutSeconds)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
paths:
  data: benchmark/
  output: runs/
  transcripts: runs/transcripts
writer:
  engine: azure-openai
  model: gpt-4.1
  base_url: https://example.openai.azure.com
  api_version: 2025-01-01-preview
  temperature: 1.0
reviewer:
  engine: openai
  model: llama3:8b
  base_url: http://localhost:11434/v1
  auth: api-key
  api_key: $OLLAMA_KEY
  extra_body:
    options:
      num_ctx: 4096
judge:
  model: gpt-5
  timeout_seconds: 60
dialogue:
  max_turns: 40
  timeout_seconds: 120
publish:
  account_url: https://acct.blob.core.windows.net
  container: socialcc-runs
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "File", filepath.Join(dir, FileName), cfg.File)
	assertEqual(t, "DataDir", filepath.Join(dir, "benchmark"), cfg.DataDir())
	assertEqual(t, "OutputDir", filepath.Join(dir, "runs"), cfg.OutputDir())
	assertEqual(t, "TranscriptsDir", filepath.Join(dir, "runs", "transcripts"), cfg.TranscriptsDir())

	assertEqual(t, "Writer.Model", "gpt-4.1", cfg.Writer.Model)
	assertEqual(t, "Writer.Auth", "aad", cfg.Writer.Auth)
	if cfg.Writer.Temperature == nil || *cfg.Writer.Temperature != 1.0 {
		t.Errorf("Writer.Temperature = %v, want 1.0", cfg.Writer.Temperature)
	}

	assertEqual(t, "Reviewer.Engine", "openai", cfg.Reviewer.Engine)
	assertEqual(t, "Reviewer.APIKey", "$OLLAMA_KEY", cfg.Reviewer.APIKey)
	if _, ok := cfg.Reviewer.Extra["options"]; !ok {
		t.Errorf("Reviewer.Extra missing options: %v", cfg.Reviewer.Extra)
	}

	assertEqual(t, "Judge.Engine", "azure-openai", cfg.Judge.Engine)
	assertEqual(t, "Judge.Model", "gpt-5", cfg.Judge.Model)
	assertEqualInt(t, "Judge.TimeoutSeconds", 60, cfg.Judge.TimeoutSeconds)

	assertEqualInt(t, "Dialogue.MaxTurns", 40, cfg.Dialogue.MaxTurns)
	assertEqualInt(t, "Dialogue.TimeoutSeconds", 120, cfg.Dialogue.TimeoutSeconds)

	assertEqual(t, "Publish.Container", "socialcc-runs", cfg.Publish.Container)
}

func TestLoad_PartialConfig_KeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "reviewer:\n  model: gpt-4o-mini\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "Reviewer.Model", "gpt-4o-mini", cfg.Reviewer.Model)
	assertEqual(t, "Reviewer.Engine", "azure-openai", cfg.Reviewer.Engine)
	assertEqual(t, "Paths.Data", "data", cfg.Paths.Data)
	assertEqual(t, "Judge.Model", "gpt-4o", cfg.Judge.Model)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	assertEqual(t, "File", "", cfg.File)
	assertEqual(t, "DataDir", filepath.Join(dir, "data"), cfg.DataDir())
	assertEqual(t, "TranscriptsDir", "", cfg.TranscriptsDir())
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "writer: [unclosed")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "paths:\n  output: out\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// relative paths resolve against the config file, not the start dir
	assertEqual(t, "OutputDir", filepath.Join(root, "out"), cfg.OutputDir())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alt.yaml", "judge:\n  model: gpt-4.1\n")

	cfg, err := LoadFile(filepath.Join(dir, "alt.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	assertEqual(t, "Judge.Model", "gpt-4.1", cfg.Judge.Model)
	assertEqual(t, "Dir", dir, cfg.Dir)

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	cfg.Reviewer.Engine = llm.EngineOpenAI
	cfg.Judge.BaseURL = "https://judge.example"

	cfg.ApplyEnv(func(k string) string {
		if k == "AZURE_OPENAI_ENDPOINT" {
			return "https://env.example"
		}
		return ""
	})

	assertEqual(t, "Writer.BaseURL", "https://env.example", cfg.Writer.BaseURL)
	assertEqual(t, "Reviewer.BaseURL", "", cfg.Reviewer.BaseURL)
	assertEqual(t, "Judge.BaseURL", "https://judge.example", cfg.Judge.BaseURL)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}
