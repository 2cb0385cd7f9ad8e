package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rosterbot/rosterbot/config"
	"github.com/rosterbot/rosterbot/server"
)

var serveListenAddress string

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP session host",
		Long: `Run the HTTP session host.

Exposes the session protocol under /api/v1/sessions, plus /healthz,
/version and /metrics. Clients open a session, upload export files and
finish to receive the merged roster.`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveListenAddress, "listen", "", "Bind address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if serveListenAddress != "" {
		cfg.ListenAddress = serveListenAddress
	}

	log := cfg.NewLogger("rosterbot")

	srv := server.New(cfg.ListenAddress, log, prometheus.NewRegistry())
	return srv.Start()
}
