package main

import (
	"errors"
	"fmt"

	"github.com/spboyer/socialcc/internal/pipeline"
	"github.com/spboyer/socialcc/internal/reporting"
	"github.com/spf13/cobra"
)

var (
	dialogueModel    string
	dialogueCfgList1 string
	dialogueCfgList2 string

	cleanModel string

	judgeAgentModel string
	judgeModelName  string

	resultModel     string
	resultInterpret bool
	resultJUnit     string
)

func requireModel(model string) error {
	if model == "" {
		return errors.New("--agent2-model is required")
	}
	return nil
}

func newPrepareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Build the agent prompt files from SocialCC.csv",
		Long: `Read the benchmark file from the data directory and write one system
prompt per scenario for each agent (SocialCC_Agent_1.csv and
SocialCC_Agent_2.csv).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			res, err := newPipeline(e, "", nil).Prepare()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d prompts to %s and %s\n", res.Rows, res.WriterPrompts, res.ReviewerPrompts) //nolint:errcheck
			return nil
		},
	}
}

func newDialogueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialogue",
		Short: "Generate a dialogue for every scenario",
		Long: `Let the writer agent and the model under evaluation talk through every
scenario until one of them says good bye. Scenarios run one at a time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireModel(dialogueModel); err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			driver, cleanup, err := newDriver(e, dialogueModel, dialogueCfgList1, dialogueCfgList2)
			if err != nil {
				return err
			}
			defer cleanup()

			progress := newProgressDisplay(cmd.ErrOrStderr())
			defer progress.Stop()

			res, err := newPipeline(e, dialogueModel, progress.Listener()).GenerateDialogues(cmd.Context(), driver)
			if err != nil {
				return err
			}
			progress.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d dialogues to %s\n", res.Rows, res.Path) //nolint:errcheck
			if len(res.Failures) > 0 {
				return &PartialRunError{Failed: len(res.Failures), Total: res.Rows}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dialogueModel, "agent2-model", "", "Model under evaluation (Agent 2)")
	cmd.Flags().StringVar(&dialogueCfgList1, "cfg-agent1", "", "JSON config list for the writer agent (overrides .socialcc.yaml)")
	cmd.Flags().StringVar(&dialogueCfgList2, "cfg-agent2", "", "JSON config list for the model under evaluation (overrides .socialcc.yaml)")

	return cmd
}

func newCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Rewrite stored dialogues as numbered rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireModel(cleanModel); err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			res, err := newPipeline(e, cleanModel, nil).CleanDialogues()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cleaned dialogues to %s\n", res.Rows, res.Path) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&cleanModel, "agent2-model", "", "Model under evaluation (Agent 2)")
	return cmd
}

func newJudgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "judge",
		Short: "Score every cleaned dialogue on the four rubrics",
		Long: `Build the awareness, knowledge, value and behavior prompts for every
cleaned dialogue, send them to the judge one at a time, and merge the
extracted scores into the evaluation file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireModel(judgeAgentModel); err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			caller, cleanup, err := newJudge(e, judgeModelName)
			if err != nil {
				return err
			}
			defer cleanup()

			progress := newProgressDisplay(cmd.ErrOrStderr())
			defer progress.Stop()

			p := newPipeline(e, judgeAgentModel, progress.Listener())
			if _, err := p.BuildJudgePrompts(); err != nil {
				return err
			}
			jr, err := p.Judge(cmd.Context(), caller)
			if err != nil {
				return err
			}
			merged, err := p.Merge()
			if err != nil {
				return err
			}
			progress.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Judged %d prompts (%d errors); evaluation written to %s\n", jr.Calls, jr.Errors, merged.Path) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&judgeAgentModel, "agent2-model", "", "Model under evaluation (Agent 2)")
	cmd.Flags().StringVar(&judgeModelName, "judge-model", "", "Judge model (default from .socialcc.yaml, gpt-4o)")
	return cmd
}

func newResultCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "result",
		Short: "Average the evaluation scores into the result file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireModel(resultModel); err != nil {
				return err
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			out, err := newPipeline(e, resultModel, nil).Result()
			if err != nil {
				return err
			}
			return reportResult(cmd, out, resultInterpret, resultJUnit)
		},
	}

	cmd.Flags().StringVar(&resultModel, "agent2-model", "", "Model under evaluation (Agent 2)")
	cmd.Flags().BoolVar(&resultInterpret, "interpret", false, "Print a plain-language interpretation of the scores")
	cmd.Flags().StringVar(&resultJUnit, "junit", "", "Also write a JUnit XML report to this path")
	return cmd
}

// reportResult prints the result table and the optional extras shared by
// result and run.
func reportResult(cmd *cobra.Command, out *pipeline.ResultOutput, interpret bool, junitPath string) error {
	rep := &reporting.RunReport{Path: out.Path, Summary: out.Summary, Stats: out.Stats}
	w := cmd.OutOrStdout()

	if err := reporting.Render(w, []*reporting.RunReport{rep}, reporting.FormatTable); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nResult written to %s\n", out.Path) //nolint:errcheck

	if interpret {
		fmt.Fprintf(w, "\n%s", reporting.FormatSummaryReport(rep)) //nolint:errcheck
	}

	if junitPath != "" {
		if err := reporting.WriteJUnitXML(rep, junitPath); err != nil {
			return fmt.Errorf("writing JUnit report: %w", err)
		}
		fmt.Fprintf(w, "JUnit report written to %s\n", junitPath) //nolint:errcheck
	}

	return nil
}
