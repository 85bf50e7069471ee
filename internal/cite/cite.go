// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite renders publications as bibliography entries: CSL-YAML for
// Pandoc and reference managers, and BibTeX for LaTeX.
package cite

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// Format names accepted by Write.
const (
	FormatCSL    = "csl"
	FormatBibTeX = "bibtex"
)

// CSLItem is one bibliographic entry in CSL-YAML form.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Keyword  string    `yaml:"keyword,omitempty"`
	Issued   *CSLDate  `yaml:"issued,omitempty"`
	DOI      string    `yaml:"DOI,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate holds a CSL date as date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// Write renders pubs in the named format.
func Write(w io.Writer, format string, pubs []types.Publication) error {
	switch strings.ToLower(format) {
	case FormatCSL, "csl-yaml", "":
		return WriteCSL(w, pubs)
	case FormatBibTeX, "bib":
		_, err := io.WriteString(w, BibTeX(pubs))
		return err
	default:
		return fmt.Errorf("unknown citation format %q (want %s or %s)", format, FormatCSL, FormatBibTeX)
	}
}

// WriteCSL writes pubs as a CSL-YAML list.
func WriteCSL(w io.Writer, pubs []types.Publication) error {
	items := make([]CSLItem, len(pubs))
	for i, p := range pubs {
		items[i] = ToCSL(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding CSL: %w", err)
	}
	return nil
}

// ToCSL converts a publication to a CSL journal article.
func ToCSL(p types.Publication) CSLItem {
	item := CSLItem{
		ID:       p.ID,
		Type:     "article-journal",
		Title:    p.Title,
		Abstract: p.Summary,
		Keyword:  strings.Join(p.Keywords, ", "),
		DOI:      p.DOI,
		URL:      p.DOIURL(),
	}
	for _, a := range p.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if d := p.PublicationDate; !d.IsZero() {
		item.Issued = &CSLDate{DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}}}
	}
	return item
}

// parseAuthorName splits on the last space: given names first, family last.
// Single-token names go to the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{Given: name[:idx], Family: name[idx+1:]}
}

// BibTeX renders pubs as @article entries. Keys are the first author's
// family name plus year; collisions get a, b, ... suffixes in input order.
func BibTeX(pubs []types.Publication) string {
	keys := CitationKeys(pubs)
	var b strings.Builder
	for i, p := range pubs {
		fmt.Fprintf(&b, "@article{%s,\n", keys[i])
		fmt.Fprintf(&b, "  title = {%s},\n", p.Title)
		if len(p.Authors) > 0 {
			fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(p.Authors, " and "))
		}
		if !p.PublicationDate.IsZero() {
			fmt.Fprintf(&b, "  year = {%d},\n", p.PublicationDate.Year())
		}
		if p.DOI != "" {
			fmt.Fprintf(&b, "  doi = {%s},\n", p.DOI)
		}
		if len(p.Keywords) > 0 {
			fmt.Fprintf(&b, "  keywords = {%s},\n", strings.Join(p.Keywords, ", "))
		}
		fmt.Fprintf(&b, "}\n\n")
	}
	return b.String()
}

// CitationKeys returns one unique key per publication.
func CitationKeys(pubs []types.Publication) []string {
	base := make([]string, len(pubs))
	seen := make(map[string]int, len(pubs))
	for i, p := range pubs {
		base[i] = baseKey(p)
		seen[base[i]]++
	}

	keys := make([]string, len(pubs))
	next := make(map[string]int, len(pubs))
	for i, k := range base {
		if seen[k] == 1 {
			keys[i] = k
			continue
		}
		keys[i] = k + suffix(next[k])
		next[k]++
	}
	return keys
}

func baseKey(p types.Publication) string {
	family := "anon"
	if len(p.Authors) > 0 {
		n := parseAuthorName(p.Authors[0])
		family = n.Family
		if family == "" {
			family = n.Literal
		}
	}
	var b strings.Builder
	for _, r := range strings.ToLower(family) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		b.WriteString("anon")
	}
	if !p.PublicationDate.IsZero() {
		fmt.Fprintf(&b, "%d", p.PublicationDate.Year())
	}
	return b.String()
}

// suffix maps 0, 1, ..., 25, 26 to a, b, ..., z, aa.
func suffix(n int) string {
	s := ""
	for {
		s = string(rune('a'+n%26)) + s
		n = n/26 - 1
		if n < 0 {
			return s
		}
	}
}
