package main

import (
	"fmt"

	"github.com/spboyer/socialcc/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	runModel     string
	runJudge     string
	runCfgList1  string
	runCfgList2  string
	runPrepare   bool
	runInterpret bool
	runJUnit     string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every stage for one model",
		Long: `Run dialogue generation, cleaning, judging, merging and aggregation for
the model under evaluation, in that order. Input files are checked before
any model is called.`,
		Args: cobra.NoArgs,
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&runModel, "agent2-model", "", "Model under evaluation (Agent 2)")
	cmd.Flags().StringVar(&runJudge, "judge-model", "", "Judge model (default from .socialcc.yaml, gpt-4o)")
	cmd.Flags().StringVar(&runCfgList1, "cfg-agent1", "", "JSON config list for the writer agent")
	cmd.Flags().StringVar(&runCfgList2, "cfg-agent2", "", "JSON config list for the model under evaluation")
	cmd.Flags().BoolVar(&runPrepare, "prepare", false, "Rebuild the agent prompt files from SocialCC.csv first")
	cmd.Flags().BoolVar(&runInterpret, "interpret", false, "Print a plain-language interpretation of the scores")
	cmd.Flags().StringVar(&runJUnit, "junit", "", "Also write a JUnit XML report to this path")

	return cmd
}

func runCommandE(cmd *cobra.Command, _ []string) error {
	if err := requireModel(runModel); err != nil {
		return err
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	driver, closeAgents, err := newDriver(e, runModel, runCfgList1, runCfgList2)
	if err != nil {
		return err
	}
	defer closeAgents()

	caller, closeJudge, err := newJudge(e, runJudge)
	if err != nil {
		return err
	}
	defer closeJudge()

	progress := newProgressDisplay(cmd.ErrOrStderr())
	defer progress.Stop()

	res, err := newPipeline(e, runModel, progress.Listener()).Run(cmd.Context(), pipeline.RunOptions{
		Driver:  driver,
		Judge:   caller,
		Prepare: runPrepare,
	})
	progress.Stop()
	if err != nil {
		return err
	}

	if err := reportResult(cmd, res.Result, runInterpret, runJUnit); err != nil {
		return err
	}

	if n := len(res.Dialogue.Failures); n > 0 {
		return &PartialRunError{Failed: n, Total: res.Dialogue.Rows}
	}
	if res.Judge.Errors > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d judge calls failed and were scored empty\n", res.Judge.Errors) //nolint:errcheck
	}
	return nil
}
