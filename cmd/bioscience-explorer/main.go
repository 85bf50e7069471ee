// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bioscience-explorer CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bioscience-explorer/internal/corpus"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bioscience-explorer CLI.
var rootCmd = &cobra.Command{
	Use:   "bioscience-explorer",
	Short: "Browse, filter and summarize space bioscience publications",
	Long: `bioscience-explorer works over a small corpus of space bioscience
publications. It filters them by research category and free text, derives
summary statistics, answers common research questions from a fixed table of
canned answers, exports citations, mirrors the corpus into SQLite, and
serves everything as a JSON API.

The corpus is compiled into the binary; set corpus.path (or --corpus) to
use a YAML file with the same shape instead.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bioscience-explorer.yaml or ~/.config/bioscience-explorer/bioscience-explorer.yaml)")
	rootCmd.PersistentFlags().String("corpus", "", "publication corpus YAML file (default: built-in corpus)")
	viper.BindPFlag("corpus.path", rootCmd.PersistentFlags().Lookup("corpus"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("corpus.path", "")
	v.SetDefault("index.dir", "index")
	v.SetDefault("stats.top_categories", 3)
	v.SetDefault("stats.top_keywords", 5)
	v.SetDefault("assistant.response_delay", "1.5s")
	v.SetDefault("serve.addr", "127.0.0.1:8080")
	v.SetDefault("serve.shutdown_timeout", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bioscience-explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bioscience-explorer"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("BIOSCIENCE_EXPLORER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, file and default settings.
func loadConfig(v *viper.Viper) (types.ExplorerConfig, error) {
	var cfg types.ExplorerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// openCorpus loads the configured corpus.
func openCorpus(cfg types.ExplorerConfig) (*corpus.Store, error) {
	store, err := corpus.Open(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	return store, nil
}

// setup is the common prologue of every data command.
func setup() (types.ExplorerConfig, *corpus.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return cfg, nil, err
	}
	store, err := openCorpus(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, store, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
