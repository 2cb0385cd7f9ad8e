// Package cmd provides CLI commands for the rosterbot tool.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rosterbot/rosterbot/config"
	"github.com/rosterbot/rosterbot/pkg/render"
	"github.com/rosterbot/rosterbot/pkg/session"
)

var extractOutput string

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Extract a participant roster from chat export files",
		Long: `Extract a participant roster from chat export files.

Accepts up to 10 .json or .html export files, merges their participants
and @-mentions, and prints the roster. Small rosters are printed inline;
large ones are written to an xlsx workbook.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Path for the xlsx workbook (default from config)")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	output := extractOutput
	if output == "" {
		output = cfg.OutputPath
	}

	sess := session.New()
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := sess.Add(filepath.Base(path), data); err != nil {
			return fmt.Errorf("adding %s: %w", path, err)
		}
	}

	agg, err := sess.Finish()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d file(s), %d failed: %d participant(s), %d mention(s).\n",
		agg.Processed, agg.Failed, len(agg.Participants), len(agg.Mentions))

	if len(agg.Participants) == 0 {
		fmt.Fprintln(out, "No participants found in the export.")
		return nil
	}

	plan, err := render.Present(agg)
	if err != nil {
		return err
	}

	if plan.Mode == render.ModeSpreadsheet {
		if err := os.WriteFile(output, plan.Workbook, 0o644); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		fmt.Fprintf(out, "Found %d participants; roster written to %s\n", len(agg.Participants), output)
		return nil
	}

	for _, chunk := range plan.Chunks {
		fmt.Fprint(out, chunk)
	}
	fmt.Fprintln(out)
	return nil
}
