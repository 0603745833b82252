package main

import (
	"fmt"
	"strings"

	"github.com/decker502/virtuallab/pkg/app"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the lab data files for consistency",
	Long: `Loads steps.yaml, gates.yaml and layout.yaml, checks that every gate refers to a
known step and parses every model referenced by the layout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.ConfigureLogging(cfg.Verbose)

		fsys, dir, err := app.OpenData(cfg.DataDir)
		if err != nil {
			return err
		}
		report, err := app.Validate(cmd.Context(), fsys, dir)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "steps:  %d\n", report.Steps)
		fmt.Fprintf(out, "gates:  %d\n", report.Gates)
		fmt.Fprintf(out, "props:  %d\n", report.Props)
		fmt.Fprintf(out, "models: %s\n", strings.Join(report.Models, ", "))
		fmt.Fprintln(out, "Lab data is valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
