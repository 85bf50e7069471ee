// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bioscience-explorer/internal/filter"
	"github.com/pdiddy/bioscience-explorer/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats [query]",
	Short: "Summarize the filtered publications",
	Long: `Stats derives counters over the publications that pass the filters:
total, distinct authors, average authors per paper, publications in the
current year, per-category counts, and the most common categories and
keywords. Ties in the top lists keep first-encounter order.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, store, err := setup()
	if err != nil {
		return err
	}
	cats, query, err := filtersFromFlags(cmd, args)
	if err != nil {
		return err
	}

	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year = time.Now().Year()
	}
	opts := stats.OptionsFromConfig(cfg.Stats)
	if cmd.Flags().Changed("top-categories") {
		opts.TopCategories, _ = cmd.Flags().GetInt("top-categories")
	}
	if cmd.Flags().Changed("top-keywords") {
		opts.TopKeywords, _ = cmd.Flags().GetInt("top-keywords")
	}

	st := stats.Aggregate(filter.Filter(store.All(), cats, query), year, opts)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return stats.FormatJSON(cmd.OutOrStdout(), st)
	}
	stats.FormatTable(cmd.OutOrStdout(), st)
	return nil
}

func init() {
	addFilterFlags(statsCmd)
	statsCmd.Flags().Int("year", 0, "year counted as current (default: this year)")
	statsCmd.Flags().Int("top-categories", 3, "length of the top categories list")
	statsCmd.Flags().Int("top-keywords", 5, "length of the top keywords list")
	statsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(statsCmd)
}
