package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/chordlint/internal/config"
	"github.com/conneroisu/chordlint/internal/server"
)

// serveCmd starts the live validation server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the live validation server",
	Long: `Start an HTTP server exposing the validation engine to editor
integrations:

  POST /api/validate   Validate a document once
  GET  /ws             WebSocket session: each text frame is a document
                       revision, each reply its validation result
  GET  /healthz        Liveness probe

Examples:
  chordlint serve                      # localhost:7331
  chordlint serve --port 9000
  CHORDLINT_SERVER_PORT=9000 chordlint serve`,
	RunE: runServeCommand,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 7331, "Port to listen on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")

	must(viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port")))
	must(viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host")))
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger).ListenAndServe(ctx)
}
