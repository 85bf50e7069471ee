// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bioscience-explorer/internal/corpus"
	"github.com/pdiddy/bioscience-explorer/internal/filter"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.IndexConfig{Dir: filepath.Join(t.TempDir(), "index")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func defaultPubs(t *testing.T) []types.Publication {
	t.Helper()
	c, err := corpus.Default()
	require.NoError(t, err)
	return c.All()
}

func syncAll(t *testing.T, s *Store, pubs []types.Publication) SyncSummary {
	t.Helper()
	var buf bytes.Buffer
	sum, err := s.Sync(context.Background(), pubs, &buf)
	require.NoError(t, err)
	return sum
}

func ids(pubs []types.Publication) []string {
	out := make([]string, len(pubs))
	for i, p := range pubs {
		out[i] = p.ID
	}
	return out
}

// --- tests ---

func TestNewStoreCreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "index")
	s, err := NewStore(types.IndexConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
}

func TestNewStoreSchemaIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s1, err := NewStore(types.IndexConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewStore(types.IndexConfig{Dir: dir})
	require.NoError(t, err)
	defer s2.Close()

	var name string
	err = s2.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='publications'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "publications", name)
}

func TestSyncIndexesCorpus(t *testing.T) {
	s := testStore(t)
	pubs := defaultPubs(t)

	var buf bytes.Buffer
	sum, err := s.Sync(context.Background(), pubs, &buf)
	require.NoError(t, err)

	assert.Equal(t, SyncSummary{Indexed: len(pubs)}, sum)
	assert.Equal(t, len(pubs), sum.Total())
	assert.Contains(t, buf.String(), "indexed: 14, updated: 0, skipped: 0, removed: 0")

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(pubs), n)

	_, err = os.Stat(filepath.Join(s.Dir(), "export.yaml"))
	assert.NoError(t, err, "sync should refresh export.yaml")
}

func TestSyncSkipsUnchanged(t *testing.T) {
	s := testStore(t)
	pubs := defaultPubs(t)
	syncAll(t, s, pubs)

	sum := syncAll(t, s, pubs)
	assert.Equal(t, SyncSummary{Skipped: len(pubs)}, sum)
}

func TestSyncUpdatesAndRemoves(t *testing.T) {
	s := testStore(t)
	pubs := defaultPubs(t)
	syncAll(t, s, pubs)

	changed := pubs[:len(pubs)-2]
	changed[0].Title = "Revised title"

	var buf bytes.Buffer
	sum, err := s.Sync(context.Background(), changed, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Updated)
	assert.Equal(t, 2, sum.Removed)
	assert.Equal(t, len(changed)-1, sum.Skipped)
	assert.Contains(t, buf.String(), "removed  13")
	assert.Contains(t, buf.String(), "removed  14")

	got, err := s.Get(context.Background(), changed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Revised title", got.Title)

	_, err = s.Get(context.Background(), "14")
	assert.True(t, IsNotFound(err))
}

func TestSyncReorderUpdatesPosition(t *testing.T) {
	s := testStore(t)
	pubs := defaultPubs(t)
	syncAll(t, s, pubs)

	reversed := make([]types.Publication, len(pubs))
	for i, p := range pubs {
		reversed[len(pubs)-1-i] = p
	}
	syncAll(t, s, reversed)

	all, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ids(reversed), ids(all))
}

func TestSyncCancelled(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Sync(ctx, defaultPubs(t), &bytes.Buffer{})
	assert.Error(t, err)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "cancelled sync must not commit")
}

func TestGetRoundTrip(t *testing.T) {
	s := testStore(t)
	pubs := defaultPubs(t)
	syncAll(t, s, pubs)

	got, err := s.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, pubs[0].Title, got.Title)
	assert.Equal(t, pubs[0].Category, got.Category)
	assert.Equal(t, pubs[0].Authors, got.Authors)
	assert.Equal(t, pubs[0].Keywords, got.Keywords)
	assert.Equal(t, pubs[0].DOI, got.DOI)
	assert.True(t, pubs[0].PublicationDate.Equal(got.PublicationDate))

	_, err = s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchMatchesFilter(t *testing.T) {
	s := testStore(t)
	pubs := defaultPubs(t)
	syncAll(t, s, pubs)

	tests := []struct {
		name  string
		cats  types.CategorySet
		query string
	}{
		{"everything", 0, ""},
		{"whitespace query", 0, "   "},
		{"mars", 0, "mars"},
		{"case-insensitive", 0, "MICROGRAVITY"},
		{"keyword only", 0, "veggie"},
		{"no match", 0, "zzz-not-present"},
		{"one category", types.NewCategorySet(types.CategoryMuscleAtrophy), ""},
		{"categories and query", types.NewCategorySet(types.CategoryPlants, types.CategoryHumanHealth), "lunar"},
		{"leading space kept", 0, " bone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := filter.Filter(pubs, tt.cats, tt.query)
			got, err := s.Search(context.Background(), tt.cats, tt.query)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, ids(want), ids(got))
		})
	}
}

func TestExportYAMLLoadsAsCorpus(t *testing.T) {
	s := testStore(t)
	pubs := defaultPubs(t)
	syncAll(t, s, pubs)

	path, err := s.ExportYAML(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "export.yaml"), path)

	loaded, err := corpus.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ids(pubs), ids(loaded.All()))
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)
	syncAll(t, s, defaultPubs(t))

	path, err := s.ExportJSON(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"publications\": ["))
	assert.Contains(t, string(data), `"category": "human_health"`)
}

func TestScanNullColumns(t *testing.T) {
	s := testStore(t)
	_, err := s.db.Exec(`INSERT INTO publications (id, position, title, category, content_hash)
		VALUES ('x', 0, 'Bare', 'sleep', 'h')`)
	require.NoError(t, err)

	got, err := s.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, types.CategorySleep, got.Category)
	assert.Empty(t, got.Keywords)
	assert.True(t, got.PublicationDate.IsZero())

	var hash sql.NullString
	require.NoError(t, s.db.QueryRow(`SELECT content_hash FROM publications WHERE id='x'`).Scan(&hash))
	assert.Equal(t, "h", hash.String)
}
