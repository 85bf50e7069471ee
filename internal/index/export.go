// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bioscience-explorer/internal/corpus"
)

// ExportYAML writes the index to dir/export.yaml in the corpus file shape,
// so the result can be loaded back with corpus.Load. It returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	file, err := s.exportFile(ctx)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes the index to dir/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	file, err := s.exportFile(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("export.json", data)
}

func (s *Store) exportFile(ctx context.Context) (corpus.File, error) {
	pubs, err := s.All(ctx)
	if err != nil {
		return corpus.File{}, fmt.Errorf("querying for export: %w", err)
	}
	return corpus.File{Publications: pubs}, nil
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
