// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bioscience-explorer/internal/cite"
	"github.com/pdiddy/bioscience-explorer/internal/corpus"
	"github.com/pdiddy/bioscience-explorer/internal/filter"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite [query]",
	Short: "Export citations for publications as CSL-YAML or BibTeX",
	Long: `Cite writes bibliography entries for the publications that pass the
filters, or for the publications named with --id. CSL-YAML output is
consumable by Pandoc (--bibliography) and reference managers.`,
	RunE: runCite,
}

func runCite(cmd *cobra.Command, args []string) error {
	_, store, err := setup()
	if err != nil {
		return err
	}
	pubs, err := citeSelection(cmd, args, store)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return cite.Write(cmd.OutOrStdout(), format, pubs)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := cite.Write(f, format, pubs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d citations to %s\n", len(pubs), output)
	return nil
}

func citeSelection(cmd *cobra.Command, args []string, store *corpus.Store) ([]types.Publication, error) {
	ids, _ := cmd.Flags().GetStringSlice("id")
	if len(ids) == 0 {
		cats, query, err := filtersFromFlags(cmd, args)
		if err != nil {
			return nil, err
		}
		return filter.Filter(store.All(), cats, query), nil
	}

	pubs := make([]types.Publication, 0, len(ids))
	for _, id := range ids {
		p, ok := store.Get(id)
		if !ok {
			return nil, fmt.Errorf("publication %q not found", id)
		}
		pubs = append(pubs, p)
	}
	return pubs, nil
}

func init() {
	addFilterFlags(citeCmd)
	citeCmd.Flags().StringSlice("id", nil, "cite these publication ids instead of filtering")
	citeCmd.Flags().String("format", cite.FormatCSL, "output format: csl or bibtex")
	citeCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(citeCmd)
}
