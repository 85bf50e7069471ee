// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bioscience-explorer/internal/assistant"
	"github.com/pdiddy/bioscience-explorer/internal/logging"
	"github.com/pdiddy/bioscience-explorer/internal/metrics"
	"github.com/pdiddy/bioscience-explorer/internal/server"
	"github.com/pdiddy/bioscience-explorer/internal/stats"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer as a JSON API",
	Long: `Serve exposes the corpus, filters, statistics and assistant over HTTP
under /api, with Prometheus metrics at /metrics. It shuts down gracefully
on interrupt.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, "bioscience-explorer", cfg.Log)
	asker := assistant.NewAsker(nil, store, cfg.Assistant)
	srv := server.New(store, asker,
		server.WithLogger(logger),
		server.WithMetrics(metrics.New()),
		server.WithStatsOptions(stats.OptionsFromConfig(cfg.Stats)),
	)

	logger.Info("corpus loaded", "publications", store.Len(), "path", cfg.Corpus.Path)
	return srv.ListenAndServe(cmd.Context(), cfg.Serve.Addr, cfg.Serve.ShutdownTimeout)
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
	serveCmd.Flags().String("log-format", "text", "log format: text or json")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("log.level", serveCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log.format", serveCmd.Flags().Lookup("log-format"))

	rootCmd.AddCommand(serveCmd)
}
