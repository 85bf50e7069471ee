// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bioscience-explorer/internal/index"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite mirror of the corpus (sync, search, export)",
	Long: `Index keeps a local SQLite copy of the corpus in <index.dir>/explorer.db
for ad-hoc SQL inspection. Use subcommands to sync it with the corpus,
search it, or export it.`,
}

// --- sync subcommand ---

var indexSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bring the index up to date with the corpus",
	Long: `Sync inserts new publications, rewrites changed ones, skips unchanged
ones and removes publications no longer in the corpus. It refreshes
export.yaml when anything changed.`,
	RunE: runIndexSync,
}

func runIndexSync(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}
	idx, err := openIndex(cmd, cfg)
	if err != nil {
		return err
	}
	defer idx.Close()

	_, err = idx.Sync(cmd.Context(), store.All(), cmd.OutOrStdout())
	return err
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Filter the indexed publications",
	Long: `Search applies the same category and text filters as list, but
evaluates them in SQL against the index.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	idx, err := openIndex(cmd, cfg)
	if err != nil {
		return err
	}
	defer idx.Close()

	cats, query, err := filtersFromFlags(cmd, args)
	if err != nil {
		return err
	}
	pubs, err := idx.Search(cmd.Context(), cats, query)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatList(cmd.OutOrStdout(), pubs, jsonOutput)
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the index to YAML or JSON",
	Long: `Export writes the indexed publications to export.yaml or export.json
next to the database. The YAML export has the corpus file shape and can be
passed back with --corpus.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	idx, err := openIndex(cmd, cfg)
	if err != nil {
		return err
	}
	defer idx.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = idx.ExportYAML(cmd.Context())
	case "json":
		path, err = idx.ExportJSON(cmd.Context())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func openIndex(cmd *cobra.Command, cfg types.ExplorerConfig) (*index.Store, error) {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Index.Dir = dir
	}
	return index.NewStore(cfg.Index)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("dir", "", "index directory (default: index.dir from config)")

	addFilterFlags(indexSearchCmd)
	indexSearchCmd.Flags().Bool("json", false, "output results as JSON")

	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	indexCmd.AddCommand(indexSyncCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
