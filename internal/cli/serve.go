package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/poliscan/poliscan/internal/config"
	"github.com/poliscan/poliscan/internal/history"
	"github.com/poliscan/poliscan/internal/server"
)

var serveVerbose bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Debug logging")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis server",
	Long:  "Runs poliscan as an HTTP API: POST /analyze, POST /analyze/url, POST /classify,\nGET /history, GET /healthz. Hot-reloads the config file on change.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger(serveVerbose)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			defer store.Close()
		}
	}

	srv, err := server.New(configPath, store, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	reloader, err := server.NewReloader(srv, logger)
	if err != nil {
		logger.Warn("hot-reload disabled", "error", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if reloader != nil {
		go reloader.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return srv.Start(ctx)
}
