// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes summary counters over a publication subset: totals,
// author counts, recency, per-category counts and top-N rankings.
package stats

import (
	"math"
	"sort"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

const (
	defaultTopCategories = 3
	defaultTopKeywords   = 5
)

// Options sets the length of the ranked lists. Zero or negative values use
// the defaults (3 categories, 5 keywords).
type Options struct {
	TopCategories int
	TopKeywords   int
}

// OptionsFromConfig converts the configured list lengths.
func OptionsFromConfig(cfg types.StatsConfig) Options {
	return Options{TopCategories: cfg.TopCategories, TopKeywords: cfg.TopKeywords}
}

func (o Options) withDefaults() Options {
	if o.TopCategories <= 0 {
		o.TopCategories = defaultTopCategories
	}
	if o.TopKeywords <= 0 {
		o.TopKeywords = defaultTopKeywords
	}
	return o
}

// Aggregate computes Stats for subset. currentYear comes from the caller so
// the result depends only on the arguments.
func Aggregate(subset []types.Publication, currentYear int, opts Options) types.Stats {
	opts = opts.withDefaults()

	st := types.Stats{
		Total:       len(subset),
		CurrentYear: currentYear,
	}

	authors := make(map[string]struct{})
	authorSlots := 0
	for _, p := range subset {
		for _, a := range p.Authors {
			authors[a] = struct{}{}
		}
		authorSlots += len(p.Authors)

		if p.PublicationDate.Year() == currentYear {
			st.CurrentYearCount++
		}
	}
	st.DistinctAuthors = len(authors)
	st.AverageAuthors = averageAuthors(authorSlots, len(subset))

	st.CategoryCounts = CategoryCounts(subset)
	for _, n := range st.CategoryCounts {
		if n > 0 {
			st.ActiveCategories++
		}
	}

	st.TopCategories = topCategories(subset, opts.TopCategories)
	st.TopKeywords = topKeywords(subset, opts.TopKeywords)
	return st
}

// averageAuthors rounds to one decimal and returns 0 for an empty subset.
func averageAuthors(slots, pubs int) float64 {
	if pubs == 0 {
		return 0
	}
	return math.Round(float64(slots)/float64(pubs)*10) / 10
}

// CategoryCounts counts publications per category. Every category has an
// entry, including those with no publications.
func CategoryCounts(pubs []types.Publication) types.CategoryCounts {
	var cc types.CategoryCounts
	for _, p := range pubs {
		if p.Category.Valid() {
			cc[p.Category]++
		}
	}
	return cc
}

// tally counts names in first-encountered order.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(name string) {
	if _, seen := t.counts[name]; !seen {
		t.order = append(t.order, name)
	}
	t.counts[name]++
}

// top ranks by count descending. The sort is stable over first-encountered
// order, so equal counts keep the order in which names first appeared.
func (t *tally) top(n int) []types.RankedCount {
	ranked := make([]types.RankedCount, len(t.order))
	for i, name := range t.order {
		ranked[i] = types.RankedCount{Name: name, Count: t.counts[name]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func topCategories(subset []types.Publication, n int) []types.RankedCount {
	t := newTally()
	for _, p := range subset {
		t.add(p.Category.String())
	}
	return t.top(n)
}

// topKeywords counts each keyword at most once per publication.
func topKeywords(subset []types.Publication, n int) []types.RankedCount {
	t := newTally()
	for _, p := range subset {
		seen := make(map[string]bool, len(p.Keywords))
		for _, k := range p.Keywords {
			if seen[k] {
				continue
			}
			seen[k] = true
			t.add(k)
		}
	}
	return t.top(n)
}
