// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index mirrors the publication corpus into a local SQLite database
// for ad-hoc SQL inspection, filtered search and export.
package index

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

const (
	dbFile     = "explorer.db"
	defaultDir = "index"
)

// ErrNotFound is returned by Get for an id that is not indexed.
var ErrNotFound = errors.New("publication not found")

// Store manages the index database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates dir/explorer.db and its schema.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

// The *_lc columns hold lowercased copies of the searchable fields so that
// Search can apply the same Unicode case folding as the in-memory filter;
// SQLite's lower() only folds ASCII.
func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			summary TEXT,
			findings TEXT,
			relevance_note TEXT,
			keywords TEXT,
			related_topics TEXT,
			category TEXT NOT NULL,
			authors TEXT,
			publication_date TEXT,
			doi TEXT,
			title_lc TEXT,
			summary_lc TEXT,
			findings_lc TEXT,
			keywords_lc TEXT,
			related_topics_lc TEXT,
			content_hash TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_category ON publications(category)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_position ON publications(position)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SyncSummary holds counts from a Sync run.
type SyncSummary struct {
	Indexed int `json:"indexed"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Removed int `json:"removed"`
}

// Total returns the number of corpus records processed.
func (s SyncSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped
}

// Sync makes the index match pubs: new records are inserted, changed ones
// rewritten, unchanged ones (same content hash and position) skipped, and
// rows whose id is no longer in pubs deleted. Progress lines go to w. After
// a run that changed anything, export.yaml is refreshed.
func (s *Store) Sync(ctx context.Context, pubs []types.Publication, w io.Writer) (SyncSummary, error) {
	var summary SyncSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	keep := make(map[string]bool, len(pubs))
	for pos, p := range pubs {
		if err := ctx.Err(); err != nil {
			return SyncSummary{}, err
		}
		keep[p.ID] = true

		hash, err := contentHash(pos, p)
		if err != nil {
			return SyncSummary{}, fmt.Errorf("hashing %s: %w", p.ID, err)
		}

		var stored string
		err = tx.QueryRowContext(ctx,
			`SELECT content_hash FROM publications WHERE id = ?`, p.ID,
		).Scan(&stored)
		switch {
		case err == nil && stored == hash:
			summary.Skipped++
			continue
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return SyncSummary{}, fmt.Errorf("looking up %s: %w", p.ID, err)
		}
		isUpdate := err == nil

		if err := upsert(ctx, tx, pos, p, hash); err != nil {
			return SyncSummary{}, fmt.Errorf("indexing %s: %w", p.ID, err)
		}
		if isUpdate {
			fmt.Fprintf(w, "updated  %s\n", p.ID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed  %s\n", p.ID)
			summary.Indexed++
		}
	}

	removed, err := removeMissing(ctx, tx, keep)
	if err != nil {
		return SyncSummary{}, err
	}
	for _, id := range removed {
		fmt.Fprintf(w, "removed  %s\n", id)
	}
	summary.Removed = len(removed)

	if err := tx.Commit(); err != nil {
		return SyncSummary{}, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, removed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Removed)

	if summary.Indexed > 0 || summary.Updated > 0 || summary.Removed > 0 {
		if _, err := s.ExportYAML(ctx); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}
	return summary, nil
}

func contentHash(pos int, p types.Publication) (string, error) {
	data, err := json.Marshal(struct {
		Position    int               `json:"position"`
		Publication types.Publication `json:"publication"`
	}{pos, p})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func upsert(ctx context.Context, tx *sql.Tx, pos int, p types.Publication, hash string) error {
	date := ""
	if !p.PublicationDate.IsZero() {
		date = p.PublicationDate.Format(time.RFC3339)
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO publications (
			id, position, title, summary, findings, relevance_note, keywords,
			related_topics, category, authors, publication_date, doi,
			title_lc, summary_lc, findings_lc, keywords_lc, related_topics_lc,
			content_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			position=excluded.position, title=excluded.title,
			summary=excluded.summary, findings=excluded.findings,
			relevance_note=excluded.relevance_note, keywords=excluded.keywords,
			related_topics=excluded.related_topics, category=excluded.category,
			authors=excluded.authors, publication_date=excluded.publication_date,
			doi=excluded.doi, title_lc=excluded.title_lc,
			summary_lc=excluded.summary_lc, findings_lc=excluded.findings_lc,
			keywords_lc=excluded.keywords_lc,
			related_topics_lc=excluded.related_topics_lc,
			content_hash=excluded.content_hash`,
		p.ID, pos, p.Title, p.Summary, p.Findings, p.RelevanceNote,
		jsonList(p.Keywords), jsonList(p.RelatedTopics), p.Category.String(),
		jsonList(p.Authors), date, p.DOI,
		strings.ToLower(p.Title), strings.ToLower(p.Summary), strings.ToLower(p.Findings),
		jsonList(lowerAll(p.Keywords)), jsonList(lowerAll(p.RelatedTopics)),
		hash,
	)
	return err
}

func removeMissing(ctx context.Context, tx *sql.Tx, keep map[string]bool) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM publications ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing indexed ids: %w", err)
	}
	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM publications WHERE id = ?`, id); err != nil {
			return nil, fmt.Errorf("removing %s: %w", id, err)
		}
	}
	return stale, nil
}

func jsonList(v []string) string {
	if v == nil {
		v = []string{}
	}
	data, _ := json.Marshal(v)
	return string(data)
}

func lowerAll(v []string) []string {
	out := make([]string, len(v))
	for i, s := range v {
		out[i] = strings.ToLower(s)
	}
	return out
}
