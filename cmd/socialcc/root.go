package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spboyer/socialcc/internal/projectconfig"
	"github.com/spboyer/socialcc/internal/utils"
	"github.com/spboyer/socialcc/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

var (
	debugLogging bool
	noColor      bool
	configPath   string
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "socialcc",
		Short: "SocialCC - cultural competence evaluation for chat models",
		Long: `SocialCC evaluates the cultural competence of a chat model.

Two agents role-play each benchmark scenario, a judge model scores the
resulting dialogue on awareness, knowledge, value and behavior, and the
scores are averaged into one result row per model.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to .socialcc.yaml (default: search upwards from the working directory)")

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newPrepareCommand())
	cmd.AddCommand(newDialogueCommand())
	cmd.AddCommand(newCleanCommand())
	cmd.AddCommand(newJudgeCommand())
	cmd.AddCommand(newResultCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newPublishCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// env is what every stage command needs: the loaded configuration and a
// logger scoped to this invocation.
type env struct {
	cfg    *projectconfig.ProjectConfig
	logger *slog.Logger
	getenv func(string) string
}

// newLogger builds the invocation logger. Color is on for terminals
// unless --no-color was given.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debugLogging {
		level = slog.LevelDebug
	}

	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = term.IsTerminal(int(f.Fd()))
	}

	return utils.NewLogger(w, utils.LogOptions{Level: level, Color: color}).
		With("run_id", uuid.NewString())
}

// loadEnv reads .env, finds and validates the project config and builds
// the logger.
func loadEnv(cmd *cobra.Command) (*env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr())

	var (
		cfg *projectconfig.ProjectConfig
		err error
	)
	if configPath != "" {
		cfg, err = projectconfig.LoadFile(configPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("getting working directory: %w", wdErr)
		}
		cfg, err = projectconfig.Load(wd)
	}
	if err != nil {
		return nil, err
	}

	if cfg.File != "" {
		problems, err := validation.ValidateConfigFile(cfg.File)
		if err != nil {
			return nil, err
		}
		if len(problems) > 0 {
			return nil, fmt.Errorf("%s is invalid:\n  %s", cfg.File, strings.Join(problems, "\n  "))
		}
		logger.Debug("loaded config", "path", cfg.File)
	}

	cfg.ApplyEnv(os.Getenv)

	return &env{cfg: cfg, logger: logger, getenv: os.Getenv}, nil
}
