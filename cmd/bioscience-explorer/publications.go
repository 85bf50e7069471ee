// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bioscience-explorer/internal/filter"
	"github.com/pdiddy/bioscience-explorer/internal/stats"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// --- list subcommand ---

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List publications matching the category and text filters",
	Long: `List prints the publications that pass the filters, in corpus order.
Categories combine with OR; the query is a case-insensitive substring
matched against title, summary, findings, keywords and related topics.
Positional arguments are joined into the query when --query is not set.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	_, store, err := setup()
	if err != nil {
		return err
	}
	cats, query, err := filtersFromFlags(cmd, args)
	if err != nil {
		return err
	}

	subset := filter.Filter(store.All(), cats, query)
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatList(cmd.OutOrStdout(), subset, jsonOutput)
}

func formatList(w io.Writer, pubs []types.Publication, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, pubs)
	}

	if len(pubs) == 0 {
		fmt.Fprintln(w, "No publications found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-18s  %-4s  %s\n", "ID", "Category", "Year", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, p := range pubs {
		fmt.Fprintf(w, "%-4s  %-18s  %-4d  %s\n", p.ID, p.Category.Label(), p.PublicationDate.Year(), truncate(p.Title, 68))
	}
	fmt.Fprintf(w, "\n%d publications\n", len(pubs))
	return nil
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- show subcommand ---

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one publication in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	_, store, err := setup()
	if err != nil {
		return err
	}
	p, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("publication %q not found", args[0])
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	formatPublication(cmd.OutOrStdout(), p)
	return nil
}

func formatPublication(w io.Writer, p types.Publication) {
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintln(w, strings.Repeat("=", min(len(p.Title), 80)))
	fmt.Fprintf(w, "ID:        %s\n", p.ID)
	fmt.Fprintf(w, "Category:  %s\n", p.Category.Label())
	fmt.Fprintf(w, "Authors:   %s\n", strings.Join(p.Authors, ", "))
	fmt.Fprintf(w, "Published: %s\n", p.PublicationDate.Format("2006-01-02"))
	if p.DOI != "" {
		fmt.Fprintf(w, "DOI:       %s\n", p.DOIURL())
	}
	fmt.Fprintf(w, "\nSummary\n  %s\n", p.Summary)
	fmt.Fprintf(w, "\nKey findings\n  %s\n", p.Findings)
	fmt.Fprintf(w, "\nMission relevance\n  %s\n", p.RelevanceNote)
	fmt.Fprintf(w, "\nKeywords:       %s\n", strings.Join(p.Keywords, ", "))
	fmt.Fprintf(w, "Related topics: %s\n", strings.Join(p.RelatedTopics, ", "))
}

// --- categories subcommand ---

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List research categories with publication counts",
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	_, store, err := setup()
	if err != nil {
		return err
	}
	counts := stats.CategoryCounts(store.All())

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), counts)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-18s  %-20s  %s\n", "Name", "Label", "Count")
	fmt.Fprintln(w, strings.Repeat("-", 48))
	for _, c := range types.Categories() {
		fmt.Fprintf(w, "%-18s  %-20s  %5d\n", c.String(), c.Label(), counts.Get(c))
	}
	return nil
}

// --- shared helpers ---

// addFilterFlags registers --query and the repeatable --category flag.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "case-insensitive free-text filter")
	cmd.Flags().StringSliceP("category", "c", nil, "restrict to category (repeatable or comma-separated): "+categoryNames())
}

func filtersFromFlags(cmd *cobra.Command, args []string) (types.CategorySet, string, error) {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	names, _ := cmd.Flags().GetStringSlice("category")
	cats, err := types.ParseCategorySet(names)
	if err != nil {
		return 0, "", err
	}
	return cats, query, nil
}

func categoryNames() string {
	names := make([]string, 0, types.NumCategories)
	for _, c := range types.Categories() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	addFilterFlags(listCmd)
	listCmd.Flags().Bool("json", false, "output results as JSON")
	showCmd.Flags().Bool("json", false, "output as JSON")
	categoriesCmd.Flags().Bool("json", false, "output counts as JSON")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(categoriesCmd)
}
