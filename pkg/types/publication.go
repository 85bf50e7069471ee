// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bioscience explorer:
// the publication record, the closed category enumeration, search filters,
// assistant responses, corpus statistics and configuration.
package types

import (
	"slices"
	"time"
)

// Publication is one research publication summary. Records are owned by the
// corpus store; everything else treats them as read-only values.
type Publication struct {
	// ID is unique across the corpus and stable for the process lifetime.
	ID string `json:"id" yaml:"id"`

	Title    string `json:"title" yaml:"title"`
	Summary  string `json:"summary" yaml:"summary"`
	Findings string `json:"findings" yaml:"findings"`

	// RelevanceNote explains what the work means for Moon and Mars missions.
	RelevanceNote string `json:"relevance_note" yaml:"relevance_note"`

	// Keywords are in display order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	RelatedTopics []string `json:"related_topics" yaml:"related_topics"`

	Category Category `json:"category" yaml:"category"`

	// Authors lists the byline in order. Never empty.
	Authors []string `json:"authors" yaml:"authors"`

	// PublicationDate is a calendar date; the time of day is unused.
	PublicationDate time.Time `json:"publication_date" yaml:"publication_date"`

	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`
}

// Clone returns a deep copy so callers can never reach the store's slices.
func (p Publication) Clone() Publication {
	p.Keywords = slices.Clone(p.Keywords)
	p.RelatedTopics = slices.Clone(p.RelatedTopics)
	p.Authors = slices.Clone(p.Authors)
	return p
}

// DOIURL returns the resolver link for the DOI, or "" when there is none.
func (p Publication) DOIURL() string {
	if p.DOI == "" {
		return ""
	}
	return "https://doi.org/" + p.DOI
}

// SearchFilters is the presentation layer's filter state: the selected
// categories and the free-text query. It is created empty and never persisted.
type SearchFilters struct {
	Categories CategorySet `json:"-" yaml:"-"`
	Query      string      `json:"query" yaml:"query"`
}

// ToggleCategory selects c if it is not selected and deselects it otherwise.
func (f *SearchFilters) ToggleCategory(c Category) {
	f.Categories = f.Categories.Toggle(c)
}

// Reset clears the selected categories. The query belongs to the search box
// and is left untouched.
func (f *SearchFilters) Reset() {
	f.Categories = 0
}

// HasActiveFilters reports whether any category is selected.
func (f SearchFilters) HasActiveFilters() bool {
	return !f.Categories.IsEmpty()
}

// QAResponse is the assistant's answer to one question.
type QAResponse struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`

	// RelatedPublications are corpus ids. They are not validated against the
	// corpus; consumers skip ids they cannot resolve.
	RelatedPublications []string `json:"related_publications" yaml:"related_publications"`

	// Confidence is a fixed score in [0,1] attached to the canned answer.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// RankedCount is one entry of a top-N list.
type RankedCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Stats holds derived counters over a publication subset.
type Stats struct {
	Total           int `json:"total" yaml:"total"`
	DistinctAuthors int `json:"distinct_authors" yaml:"distinct_authors"`

	// AverageAuthors is rounded to one decimal and is 0 for an empty subset.
	AverageAuthors float64 `json:"average_authors" yaml:"average_authors"`

	CurrentYear      int `json:"current_year" yaml:"current_year"`
	CurrentYearCount int `json:"current_year_count" yaml:"current_year_count"`

	CategoryCounts CategoryCounts `json:"category_counts" yaml:"category_counts"`

	// ActiveCategories is the number of categories with at least one publication.
	ActiveCategories int `json:"active_categories" yaml:"active_categories"`

	TopCategories []RankedCount `json:"top_categories" yaml:"top_categories"`
	TopKeywords   []RankedCount `json:"top_keywords" yaml:"top_keywords"`
}
