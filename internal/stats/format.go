// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// FormatTable writes a human-readable summary of st to w.
func FormatTable(w io.Writer, st types.Stats) {
	fmt.Fprintf(w, "%-22s %d\n", "Total publications", st.Total)
	fmt.Fprintf(w, "%-22s %d\n", "Research areas", st.ActiveCategories)
	fmt.Fprintf(w, "%-22s %d (avg %.1f per paper)\n", "Active researchers", st.DistinctAuthors, st.AverageAuthors)
	fmt.Fprintf(w, "%-22s %d\n", fmt.Sprintf("%d publications", st.CurrentYear), st.CurrentYearCount)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top research categories")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	if len(st.TopCategories) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, rc := range st.TopCategories {
		label := rc.Name
		if c, err := types.ParseCategory(rc.Name); err == nil {
			label = c.Label()
		}
		fmt.Fprintf(w, "  %-28s %5d\n", label, rc.Count)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Most studied topics")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	if len(st.TopKeywords) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, rc := range st.TopKeywords {
		fmt.Fprintf(w, "  %-28s %5d\n", rc.Name, rc.Count)
	}
}

// FormatJSON writes st as indented JSON to w.
func FormatJSON(w io.Writer, st types.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}
