// Package main provides the rosterbot CLI entry point.
// rosterbot extracts participant rosters from chat export files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rosterbot/rosterbot/cmd"
	"github.com/rosterbot/rosterbot/pkg/buildinfo"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rosterbot",
	Short: "Extract participant rosters from chat export files",
	Long: `rosterbot parses chat export files (.json or .html), merges the
participants and @-mentions found across them, and presents the roster
either inline or as an xlsx workbook.

COMMON WORKFLOWS:
  Local extraction:  rosterbot extract export.json more.html
  HTTP session host: rosterbot serve --listen :8080

Run 'rosterbot <command> --help' for flags and examples.`,
	SilenceUsage: true,
}

var versionJSON bool

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, commit hash, and build time of the rosterbot CLI.",
	RunE: func(c *cobra.Command, args []string) error {
		if versionJSON {
			return json.NewEncoder(c.OutOrStdout()).Encode(buildinfo.Get("rosterbot"))
		}
		fmt.Fprintln(c.OutOrStdout(), buildinfo.String())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cmd.NewExtractCommand())
	rootCmd.AddCommand(cmd.NewServeCommand())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		os.Exit(0)
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
