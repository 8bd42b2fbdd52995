package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spboyer/socialcc/internal/dialogue"
	"github.com/spboyer/socialcc/internal/judge"
	"github.com/spboyer/socialcc/internal/llm"
	"github.com/spboyer/socialcc/internal/pipeline"
)

const ollamaPort = "11434"

// resolveEndpoint picks an agent endpoint. A config list file replaces the
// project config entry; a non-empty model overrides whatever was loaded.
func resolveEndpoint(base llm.Endpoint, configList, model string, getenv func(string) string) (*llm.Endpoint, error) {
	ep := base

	if configList != "" {
		loaded, err := llm.LoadConfigList(configList, getenv)
		if err != nil {
			return nil, err
		}
		ep = *loaded
	}

	if model != "" {
		ep.Model = model
	}
	if ep.Model == "" {
		return nil, errors.New("no model configured")
	}

	normalizeOllamaURL(&ep)

	if usesAPIKey(&ep) {
		if err := ep.ResolveAPIKey(getenv); err != nil {
			return nil, fmt.Errorf("%s endpoint for %s: %w", ep.Engine, ep.Model, err)
		}
	}

	return &ep, nil
}

func usesAPIKey(ep *llm.Endpoint) bool {
	switch ep.Engine {
	case llm.EngineOpenAI:
		return ep.Auth == "" || ep.Auth == llm.AuthAPIKey
	case llm.EngineAzureOpenAI:
		return ep.Auth == llm.AuthAPIKey
	default:
		return false
	}
}

// normalizeOllamaURL appends the /v1 prefix Ollama's OpenAI-compatible
// API lives under when a bare Ollama address was configured.
func normalizeOllamaURL(ep *llm.Endpoint) {
	if ep.Engine != llm.EngineOpenAI || ep.BaseURL == "" {
		return
	}

	u, err := url.Parse(ep.BaseURL)
	if err != nil || u.Port() != ollamaPort {
		return
	}

	path := strings.TrimRight(u.Path, "/")
	if strings.HasSuffix(path, "/v1") {
		return
	}
	u.Path = path + "/v1"
	ep.BaseURL = u.String()
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// newDriver builds the dialogue driver for the model under evaluation.
// The returned cleanup releases both agents' clients.
func newDriver(e *env, reviewerModel, writerList, reviewerList string) (*dialogue.Driver, func(), error) {
	writerEp, err := resolveEndpoint(e.cfg.Writer, writerList, "", e.getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("writer: %w", err)
	}
	reviewerEp, err := resolveEndpoint(e.cfg.Reviewer, reviewerList, reviewerModel, e.getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("reviewer: %w", err)
	}

	writer, closeWriter, err := llm.NewClient(writerEp, e.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("writer: %w", err)
	}
	reviewer, closeReviewer, err := llm.NewClient(reviewerEp, e.logger)
	if err != nil {
		closeWriter()
		return nil, nil, fmt.Errorf("reviewer: %w", err)
	}

	e.logger.Info("dialogue agents",
		"writer", writerEp.Model, "writer_engine", writerEp.Engine,
		"reviewer", reviewerEp.Model, "reviewer_engine", reviewerEp.Engine)

	d := dialogue.NewDriver(
		dialogue.Participant{Client: writer, Model: writerEp.Model, Temperature: writerEp.Temperature},
		dialogue.Participant{Client: reviewer, Model: reviewerEp.Model, Temperature: reviewerEp.Temperature},
		dialogue.Options{
			MaxTurns: e.cfg.Dialogue.MaxTurns,
			Timeout:  seconds(e.cfg.Dialogue.TimeoutSeconds),
		},
		e.logger,
	)

	return d, func() {
		closeReviewer()
		closeWriter()
	}, nil
}

// newJudge builds the judge caller. An empty model keeps the configured one.
func newJudge(e *env, model string) (*judge.Caller, func(), error) {
	ep, err := resolveEndpoint(e.cfg.Judge.Endpoint, "", model, e.getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("judge: %w", err)
	}

	client, cleanup, err := llm.NewClient(ep, e.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("judge: %w", err)
	}

	caller := judge.NewCaller(client, judge.CallerOptions{
		Model:       ep.Model,
		Timeout:     seconds(e.cfg.Judge.TimeoutSeconds),
		Temperature: ep.Temperature,
	}, e.logger)

	e.logger.Info("judge", "model", caller.Model(), "engine", ep.Engine)
	return caller, cleanup, nil
}

// newPipeline lays out the files for model and attaches a progress
// display.
func newPipeline(e *env, model string, progress pipeline.ProgressListener) *pipeline.Pipeline {
	layout := pipeline.NewLayout(e.cfg.DataDir(), e.cfg.OutputDir(), model)
	layout.Transcripts = e.cfg.TranscriptsDir()

	var opts []pipeline.Option
	if progress != nil {
		opts = append(opts, pipeline.WithProgressListener(progress))
	}
	return pipeline.New(layout, e.logger, opts...)
}
