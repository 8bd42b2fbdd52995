package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spboyer/socialcc/internal/projectconfig"
	"github.com/spboyer/socialcc/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var (
		model  string
		engine string
		yes    bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a .socialcc.yaml for a new evaluation project",
		Long: `Ask for the model under evaluation, its engine and the writer and judge
models, then write .socialcc.yaml and create the data directory.

Use --yes to skip the questions and take the defaults plus --model.
If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			defaults := wizard.DefaultAnswers()
			defaults.ReviewerModel = model
			if engine != "" {
				defaults.ReviewerEngine = engine
			}

			return initCommandE(cmd, dir, defaults, yes, force)
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Model under evaluation")
	cmd.Flags().StringVar(&engine, "engine", "", "Engine for the model under evaluation: openai, azure-openai, copilot-sdk or mock")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept defaults without asking")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .socialcc.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, defaults wizard.Answers, yes, force bool) error {
	path := filepath.Join(dir, projectconfig.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	answers := &defaults
	if !yes {
		var err error
		answers, err = wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout(), defaults)
		if err != nil {
			return err
		}
	} else if answers.ReviewerModel == "" {
		return errors.New("--model is required with --yes")
	}

	data, err := wizard.Render(answers)
	if err != nil {
		return err
	}

	dataDir := filepath.Join(dir, answers.Config().Paths.Data)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Wrote %s\n", path) //nolint:errcheck
	fmt.Fprintf(w, "Put SocialCC.csv in %s, then run: socialcc run --prepare --agent2-model %s\n", dataDir, answers.ReviewerModel) //nolint:errcheck
	return nil
}
