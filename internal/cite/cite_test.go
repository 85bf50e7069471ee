// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

func samplePub() types.Publication {
	return types.Publication{
		ID:              "1",
		Title:           "Integrated Physiological Adaptation",
		Summary:         "A multi-system review.",
		Keywords:        []string{"microgravity", "countermeasures"},
		Category:        types.CategoryHumanHealth,
		Authors:         []string{"Sarah Chen", "Michael Rodriguez"},
		PublicationDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		DOI:             "10.1038/s41526-024-00351-2",
	}
}

func TestToCSL(t *testing.T) {
	item := ToCSL(samplePub())

	if item.Type != "article-journal" {
		t.Errorf("Type = %q, want article-journal", item.Type)
	}
	if item.Abstract != "A multi-system review." {
		t.Errorf("Abstract = %q", item.Abstract)
	}
	if item.DOI != "10.1038/s41526-024-00351-2" {
		t.Errorf("DOI = %q", item.DOI)
	}
	if item.URL != "https://doi.org/10.1038/s41526-024-00351-2" {
		t.Errorf("URL = %q", item.URL)
	}
	if len(item.Author) != 2 || item.Author[0].Family != "Chen" || item.Author[0].Given != "Sarah" {
		t.Errorf("Author = %+v", item.Author)
	}
	if item.Issued == nil {
		t.Fatal("Issued is nil")
	}
	if got := item.Issued.DateParts[0]; got[0] != 2024 || got[1] != 3 || got[2] != 15 {
		t.Errorf("DateParts = %v, want [2024 3 15]", got)
	}
}

func TestToCSLWithoutDOI(t *testing.T) {
	p := samplePub()
	p.DOI = ""
	item := ToCSL(p)
	if item.DOI != "" || item.URL != "" {
		t.Errorf("DOI/URL should be empty, got %q / %q", item.DOI, item.URL)
	}
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Sarah Chen", CSLName{Given: "Sarah", Family: "Chen"}},
		{"Mary Ann van Dyke", CSLName{Given: "Mary Ann van", Family: "Dyke"}},
		{"NASA", CSLName{Literal: "NASA"}},
		{"  ", CSLName{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseAuthorName(tt.in); got != tt.want {
				t.Errorf("parseAuthorName(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteCSLIsValidYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSL(&buf, []types.Publication{samplePub()}); err != nil {
		t.Fatalf("WriteCSL: %v", err)
	}
	s := buf.String()
	for _, want := range []string{"type: article-journal", "DOI: 10.1038/s41526-024-00351-2", "date-parts:"} {
		if !strings.Contains(s, want) {
			t.Errorf("CSL output missing %q:\n%s", want, s)
		}
	}

	var items []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(items) != 1 || items[0].ID != "1" {
		t.Errorf("decoded items = %+v", items)
	}
}

func TestBibTeX(t *testing.T) {
	out := BibTeX([]types.Publication{samplePub()})

	for _, want := range []string{
		"@article{chen2024,",
		"title = {Integrated Physiological Adaptation}",
		"author = {Sarah Chen and Michael Rodriguez}",
		"year = {2024}",
		"doi = {10.1038/s41526-024-00351-2}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("BibTeX missing %q:\n%s", want, out)
		}
	}
}

func TestCitationKeysDisambiguate(t *testing.T) {
	a := samplePub()
	b := samplePub()
	b.ID = "2"
	c := samplePub()
	c.ID = "3"
	c.Authors = []string{"José O'Brien"}
	d := samplePub()
	d.Authors = nil
	d.PublicationDate = time.Time{}

	got := CitationKeys([]types.Publication{a, b, c, d})
	want := []string{"chen2024a", "chen2024b", "obrien2024", "anon"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuffix(t *testing.T) {
	tests := map[int]string{0: "a", 1: "b", 25: "z", 26: "aa", 27: "ab"}
	for n, want := range tests {
		if got := suffix(n); got != want {
			t.Errorf("suffix(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestWriteFormats(t *testing.T) {
	pubs := []types.Publication{samplePub()}

	var csl, bib bytes.Buffer
	if err := Write(&csl, "CSL", pubs); err != nil {
		t.Fatalf("Write csl: %v", err)
	}
	if !strings.Contains(csl.String(), "article-journal") {
		t.Error("csl format should produce CSL-YAML")
	}
	if err := Write(&bib, FormatBibTeX, pubs); err != nil {
		t.Fatalf("Write bibtex: %v", err)
	}
	if !strings.HasPrefix(bib.String(), "@article{") {
		t.Error("bibtex format should produce @article entries")
	}
	if err := Write(&bytes.Buffer{}, "ris", pubs); err == nil {
		t.Error("expected error for unknown format")
	}
}
