package pipeline

import (
	"context"
	"errors"

	"github.com/spboyer/socialcc/internal/dataset"
	"github.com/spboyer/socialcc/internal/dialogue"
	"github.com/spboyer/socialcc/internal/judge"
)

// RunOptions selects what an end-to-end run does.
type RunOptions struct {
	Driver *dialogue.Driver
	Judge  *judge.Caller
	// Prepare regenerates the agent prompt files from the benchmark first.
	Prepare bool
}

// RunResult collects the output of every stage of a run.
type RunResult struct {
	Prepare      *PrepareResult
	Dialogue     *DialogueResult
	Clean        *CleanResult
	JudgePrompts *JudgePromptsResult
	Judge        *JudgeResult
	Merge        *MergeResult
	Result       *ResultOutput
}

// Run executes every stage in order. Inputs are checked before any remote
// call is made.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.Driver == nil || opts.Judge == nil {
		return nil, errors.New("run needs both a dialogue driver and a judge")
	}

	l := p.layout
	inputs := []string{l.WriterPrompts, l.ReviewerPrompts}
	if opts.Prepare {
		inputs = []string{l.Source}
	}
	if err := dataset.RequireFiles(inputs...); err != nil {
		return nil, err
	}

	res := &RunResult{}
	var err error

	if opts.Prepare {
		if res.Prepare, err = p.Prepare(); err != nil {
			return res, err
		}
	}
	if res.Dialogue, err = p.GenerateDialogues(ctx, opts.Driver); err != nil {
		return res, err
	}
	if res.Clean, err = p.CleanDialogues(); err != nil {
		return res, err
	}
	if res.JudgePrompts, err = p.BuildJudgePrompts(); err != nil {
		return res, err
	}
	if res.Judge, err = p.Judge(ctx, opts.Judge); err != nil {
		return res, err
	}
	if res.Merge, err = p.Merge(); err != nil {
		return res, err
	}
	if res.Result, err = p.Result(); err != nil {
		return res, err
	}

	return res, nil
}
