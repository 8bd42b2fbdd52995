package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Auth modes for the OpenAI-compatible client.
const (
	// AuthAAD chains the Azure CLI login and a managed identity.
	AuthAAD = "aad"
	// AuthAzureCLI uses only the Azure CLI login.
	AuthAzureCLI = "azure-cli"
	AuthAPIKey   = "api-key"
	AuthNone     = "none"
)

// DefaultScope is the token audience for Azure OpenAI.
const DefaultScope = "https://cognitiveservices.azure.com/.default"

// Endpoint describes one model deployment and how to reach it.
type Endpoint struct {
	Engine      string         `yaml:"engine,omitempty" json:"engine,omitempty"`
	Model       string         `yaml:"model,omitempty" json:"model,omitempty"`
	BaseURL     string         `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	APIVersion  string         `yaml:"api_version,omitempty" json:"api_version,omitempty"`
	Auth        string         `yaml:"auth,omitempty" json:"auth,omitempty"`
	APIKey      string         `yaml:"api_key,omitempty" json:"-"`
	Scope       string         `yaml:"scope,omitempty" json:"scope,omitempty"`
	Temperature *float64       `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	Extra       map[string]any `yaml:"extra_body,omitempty" json:"extra_body,omitempty"`
}

// Merge overlays the non-zero fields of src onto e.
func (e *Endpoint) Merge(src *Endpoint) {
	if src == nil {
		return
	}
	if src.Engine != "" {
		e.Engine = src.Engine
	}
	if src.Model != "" {
		e.Model = src.Model
	}
	if src.BaseURL != "" {
		e.BaseURL = src.BaseURL
	}
	if src.APIVersion != "" {
		e.APIVersion = src.APIVersion
	}
	if src.Auth != "" {
		e.Auth = src.Auth
	}
	if src.APIKey != "" {
		e.APIKey = src.APIKey
	}
	if src.Scope != "" {
		e.Scope = src.Scope
	}
	if src.Temperature != nil {
		e.Temperature = src.Temperature
	}
	if src.Extra != nil {
		e.Extra = src.Extra
	}
}

// ResolveAPIKey expands a "$NAME" placeholder from the environment and
// falls back to OPENAI_API_KEY when no key is configured.
func (e *Endpoint) ResolveAPIKey(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	switch {
	case strings.HasPrefix(e.APIKey, "$"):
		name := e.APIKey[1:]
		v := getenv(name)
		if v == "" {
			return fmt.Errorf("environment variable %s is not set, but %q is used as the api_key placeholder", name, e.APIKey)
		}
		e.APIKey = v
	case e.APIKey == "":
		v := getenv("OPENAI_API_KEY")
		if v == "" {
			return errors.New("no api_key configured and OPENAI_API_KEY is not set")
		}
		e.APIKey = v
	}
	return nil
}

// configListEntry is one entry of an autogen-style config list.
type configListEntry struct {
	Model       string         `mapstructure:"model"`
	APIType     string         `mapstructure:"api_type"`
	BaseURL     string         `mapstructure:"base_url"`
	APIVersion  string         `mapstructure:"api_version"`
	APIKey      string         `mapstructure:"api_key"`
	Temperature *float64       `mapstructure:"temperature"`
	ExtraBody   map[string]any `mapstructure:"extra_body"`
}

// LoadConfigList reads a JSON config list (model_config_*.json) and
// returns its first entry as an Endpoint. API keys are resolved with
// getenv; entries without api_type default to the public OpenAI API.
func LoadConfigList(path string, getenv func(string) string) (*Endpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config list: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config list %s: %w", path, err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%s did not contain a valid config list", path)
	}

	var entry configListEntry
	if err := mapstructure.Decode(raw[0], &entry); err != nil {
		return nil, fmt.Errorf("decoding config list %s: %w", path, err)
	}

	ep := &Endpoint{
		Model:       entry.Model,
		BaseURL:     entry.BaseURL,
		APIVersion:  entry.APIVersion,
		APIKey:      entry.APIKey,
		Temperature: entry.Temperature,
		Extra:       entry.ExtraBody,
		Auth:        AuthAPIKey,
	}

	switch entry.APIType {
	case "azure":
		ep.Engine = EngineAzureOpenAI
	case "", "openai":
		ep.Engine = EngineOpenAI
		if ep.BaseURL == "" {
			ep.BaseURL = "https://api.openai.com/v1"
		}
	default:
		return nil, fmt.Errorf("%s: unsupported api_type %q", path, entry.APIType)
	}

	if err := ep.ResolveAPIKey(getenv); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ep, nil
}
