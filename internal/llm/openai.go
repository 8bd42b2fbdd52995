package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

const (
	moduleName    = "socialcc/llm"
	moduleVersion = "v0.1.0"

	defaultAzureAPIVersion = "2025-01-01-preview"
)

// OpenAIClientOptions tunes the HTTP pipeline. The zero value is usable.
type OpenAIClientOptions struct {
	// Transport replaces the default HTTP client (tests point it at httptest).
	Transport policy.Transporter

	// Credential overrides the token credential used with AuthAAD/AuthAzureCLI.
	Credential azcore.TokenCredential
}

// OpenAIClient calls the chat-completions API of Azure OpenAI or of any
// OpenAI-compatible server (api.openai.com, Ollama's /v1 endpoint).
// Retries are disabled: every Complete is exactly one HTTP request.
type OpenAIClient struct {
	endpoint *Endpoint
	pl       runtime.Pipeline
}

// NewOpenAIClient builds a client for ep.
func NewOpenAIClient(ep *Endpoint, options *OpenAIClientOptions) (*OpenAIClient, error) {
	if options == nil {
		options = &OpenAIClientOptions{}
	}

	if ep.BaseURL == "" {
		return nil, errors.New("base_url is required")
	}

	u, err := url.Parse(ep.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url %q: %w", ep.BaseURL, err)
	}

	auth := ep.Auth
	if auth == "" {
		auth = AuthAPIKey
		if ep.Engine == EngineAzureOpenAI {
			auth = AuthAAD
		}
	}

	var perRetry []policy.Policy

	switch auth {
	case AuthAAD, AuthAzureCLI:
		cred := options.Credential
		if cred == nil {
			cred, err = NewCredential(auth)
			if err != nil {
				return nil, err
			}
		}

		scope := ep.Scope
		if scope == "" {
			scope = DefaultScope
		}

		perRetry = append(perRetry, runtime.NewBearerTokenPolicy(cred, []string{scope}, &policy.BearerTokenOptions{
			InsecureAllowCredentialWithHTTP: u.Scheme == "http",
		}))
	case AuthAPIKey:
		if ep.APIKey == "" {
			return nil, errors.New("api_key auth selected but no api_key is configured")
		}
		perRetry = append(perRetry, &apiKeyPolicy{azure: ep.Engine == EngineAzureOpenAI, key: ep.APIKey})
	case AuthNone:
	default:
		return nil, fmt.Errorf("unknown auth mode: %s", auth)
	}

	clientOptions := policy.ClientOptions{
		Retry:     policy.RetryOptions{MaxRetries: -1},
		Transport: options.Transport,
	}

	return &OpenAIClient{
		endpoint: ep,
		pl:       runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{PerRetry: perRetry}, &clientOptions),
	}, nil
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends req and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.endpoint.Model
	}

	httpReq, err := runtime.NewRequest(ctx, http.MethodPost, c.completionsURL(model))
	if err != nil {
		return "", err
	}

	body := map[string]any{}
	for k, v := range c.endpoint.Extra {
		body[k] = v
	}
	for k, v := range req.Extra {
		body[k] = v
	}
	body["model"] = model
	body["messages"] = req.Messages

	temperature := req.Temperature
	if temperature == nil {
		temperature = c.endpoint.Temperature
	}
	if temperature != nil {
		body["temperature"] = *temperature
	}

	if err := runtime.MarshalAsJSON(httpReq, body); err != nil {
		return "", err
	}

	resp, err := c.pl.Do(httpReq)
	if err != nil {
		return "", err
	}

	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return "", runtime.NewResponseError(resp)
	}

	var out chatCompletionResponse
	if err := runtime.UnmarshalAsJSON(resp, &out); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("model %s returned no content", model)
	}

	return *out.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) completionsURL(model string) string {
	base := strings.TrimSuffix(c.endpoint.BaseURL, "/")

	if c.endpoint.Engine != EngineAzureOpenAI {
		return base + "/chat/completions"
	}

	version := c.endpoint.APIVersion
	if version == "" {
		version = defaultAzureAPIVersion
	}

	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		base, url.PathEscape(model), url.QueryEscape(version))
}

// apiKeyPolicy authenticates with a static key: the "api-key" header for
// Azure, a bearer Authorization header for everything else.
type apiKeyPolicy struct {
	azure bool
	key   string
}

func (p *apiKeyPolicy) Do(req *policy.Request) (*http.Response, error) {
	if p.azure {
		req.Raw().Header.Set("api-key", p.key)
	} else {
		req.Raw().Header.Set("Authorization", "Bearer "+p.key)
	}
	return req.Next()
}
