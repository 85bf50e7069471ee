// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus holds the immutable, process-wide collection of publication
// records. The default corpus is compiled into the binary; a YAML file with
// the same shape can replace it at startup.
package corpus

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

//go:embed publications.yaml
var defaultCorpus []byte

// File is the on-disk shape of a corpus file.
type File struct {
	Publications []types.Publication `json:"publications" yaml:"publications"`
}

// Store is a read-only view over a validated set of publications. It is safe
// for concurrent use because nothing mutates it after construction.
type Store struct {
	pubs []types.Publication
	byID map[string]int
}

// Default returns the store built from the embedded corpus.
func Default() (*Store, error) {
	s, err := Parse(defaultCorpus)
	if err != nil {
		return nil, fmt.Errorf("loading embedded corpus: %w", err)
	}
	return s, nil
}

// Open returns the store for path, or the embedded corpus when path is empty.
func Open(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Load reads a corpus YAML file from disk.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading corpus %s: %w", path, err)
	}
	return s, nil
}

// requiredKeys must be present and non-null on every record. A missing
// category would otherwise decode as the zero Category.
var requiredKeys = []string{"category", "publication_date"}

// Parse decodes and validates corpus YAML.
func Parse(data []byte) (*Store, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}

	var raw struct {
		Publications []map[string]any `yaml:"publications"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}
	for i, rec := range raw.Publications {
		for _, key := range requiredKeys {
			if rec[key] == nil {
				return nil, fmt.Errorf("publication %d (id %q): missing %s", i, f.Publications[i].ID, key)
			}
		}
	}

	return New(f.Publications)
}

// New validates pubs and returns a store holding private copies of them.
// Every record needs an id, a title, at least one author and a publication
// date, and ids must be unique. Categories are already checked by the
// category decoder.
func New(pubs []types.Publication) (*Store, error) {
	s := &Store{
		pubs: make([]types.Publication, 0, len(pubs)),
		byID: make(map[string]int, len(pubs)),
	}
	for i, p := range pubs {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("publication %d (id %q): %w", i, p.ID, err)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("publication %d: duplicate id %q", i, p.ID)
		}
		s.byID[p.ID] = len(s.pubs)
		s.pubs = append(s.pubs, p.Clone())
	}
	return s, nil
}

func validate(p types.Publication) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("missing id")
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("missing title")
	case len(p.Authors) == 0:
		return fmt.Errorf("no authors")
	case !p.Category.Valid():
		return fmt.Errorf("invalid category %s", p.Category)
	case p.PublicationDate.IsZero():
		return fmt.Errorf("missing publication_date")
	}
	return nil
}

// Len returns the number of publications.
func (s *Store) Len() int {
	return len(s.pubs)
}

// All returns copies of every publication in corpus order.
func (s *Store) All() []types.Publication {
	out := make([]types.Publication, len(s.pubs))
	for i, p := range s.pubs {
		out[i] = p.Clone()
	}
	return out
}

// Get returns a copy of the publication with the given id.
func (s *Store) Get(id string) (types.Publication, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return types.Publication{}, false
	}
	return s.pubs[idx].Clone(), true
}

// Resolve returns the publications for ids in the order given. Ids that are
// not in the corpus are skipped without error.
func (s *Store) Resolve(ids []string) []types.Publication {
	out := make([]types.Publication, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Get(id); ok {
			out = append(out, p)
		}
	}
	return out
}
