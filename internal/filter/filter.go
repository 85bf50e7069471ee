// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter narrows a publication corpus by category membership and a
// case-insensitive free-text query.
package filter

import (
	"strings"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// Filter returns the publications of corpus that pass both restrictions,
// in corpus order:
//   - an empty category set applies no category restriction; otherwise the
//     publication's category must be in the set;
//   - a query that is empty after trimming applies no text restriction;
//     otherwise the lowercased query must be a substring of the title,
//     summary, findings, a keyword or a related topic.
//
// No match is a normal outcome and yields an empty, non-nil slice.
func Filter(corpus []types.Publication, categories types.CategorySet, query string) []types.Publication {
	needle := Needle(query)
	out := make([]types.Publication, 0, len(corpus))
	for _, p := range corpus {
		if matches(p, categories, needle) {
			out = append(out, p)
		}
	}
	return out
}

// Apply runs Filter with the presentation layer's filter state.
func Apply(corpus []types.Publication, f types.SearchFilters) []types.Publication {
	return Filter(corpus, f.Categories, f.Query)
}

// Match reports whether a single publication passes the filter.
func Match(p types.Publication, categories types.CategorySet, query string) bool {
	return matches(p, categories, Needle(query))
}

// Needle returns the lowercased search string for query, or "" when the
// query applies no text restriction.
func Needle(query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return ""
	}
	// Only emptiness is decided on the trimmed form; the substring test uses
	// the query as typed.
	return strings.ToLower(query)
}

func matches(p types.Publication, categories types.CategorySet, needle string) bool {
	if !categories.IsEmpty() && !categories.Has(p.Category) {
		return false
	}
	if needle == "" {
		return true
	}
	return containsFold(p.Title, needle) ||
		containsFold(p.Summary, needle) ||
		containsFold(p.Findings, needle) ||
		anyContainsFold(p.Keywords, needle) ||
		anyContainsFold(p.RelatedTopics, needle)
}

// containsFold assumes needle is already lowercase.
func containsFold(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}

func anyContainsFold(fields []string, needle string) bool {
	for _, f := range fields {
		if containsFold(f, needle) {
			return true
		}
	}
	return false
}
