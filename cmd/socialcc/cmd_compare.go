package main

import (
	"github.com/spboyer/socialcc/internal/reporting"
	"github.com/spf13/cobra"
)

var compareOutputFormat string

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <result1.csv> [result2.csv ...]",
		Short: "Compare result files side by side",
		Long: `Load one or more result files and show the four rubric means of each
model next to each other. The best model per rubric is marked.`,
		Args: cobra.MinimumNArgs(1),
		RunE: compareCommandE,
	}

	cmd.Flags().StringVarP(&compareOutputFormat, "format", "f", "table", "Output format: table, json, markdown or html")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	format, err := reporting.ParseFormat(compareOutputFormat)
	if err != nil {
		return err
	}

	reports, err := reporting.LoadReports(cmd.Context(), args)
	if err != nil {
		return err
	}

	return reporting.Render(cmd.OutOrStdout(), reports, format)
}
