// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/bioscience-explorer/internal/filter"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

const selectColumns = `SELECT id, title, summary, findings, relevance_note, keywords,
	related_topics, category, authors, publication_date, doi
	FROM publications`

// Search returns the indexed publications passing the category and text
// restrictions, in corpus order. It has the same semantics as filter.Filter.
func (s *Store) Search(ctx context.Context, categories types.CategorySet, query string) ([]types.Publication, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(selectColumns)
	qb.WriteString(` WHERE 1=1`)

	if !categories.IsEmpty() {
		cats := categories.Slice()
		qb.WriteString(` AND category IN (?` + strings.Repeat(`, ?`, len(cats)-1) + `)`)
		for _, c := range cats {
			args = append(args, c.String())
		}
	}

	if needle := filter.Needle(query); needle != "" {
		qb.WriteString(` AND (instr(title_lc, ?) > 0
			OR instr(summary_lc, ?) > 0
			OR instr(findings_lc, ?) > 0
			OR EXISTS (SELECT 1 FROM json_each(keywords_lc) WHERE instr(value, ?) > 0)
			OR EXISTS (SELECT 1 FROM json_each(related_topics_lc) WHERE instr(value, ?) > 0))`)
		for range 5 {
			args = append(args, needle)
		}
	}

	qb.WriteString(` ORDER BY position`)
	return s.query(ctx, qb.String(), args...)
}

// All returns every indexed publication in corpus order.
func (s *Store) All(ctx context.Context) ([]types.Publication, error) {
	return s.query(ctx, selectColumns+` ORDER BY position`)
}

// Get returns the publication with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.Publication, error) {
	pubs, err := s.query(ctx, selectColumns+` WHERE id = ?`, id)
	if err != nil {
		return types.Publication{}, err
	}
	if len(pubs) == 0 {
		return types.Publication{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return pubs[0], nil
}

// Count returns the number of indexed publications.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM publications`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting publications: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.Publication, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	results := []types.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func scanPublication(rows *sql.Rows) (types.Publication, error) {
	var (
		p                      types.Publication
		summary, findings      sql.NullString
		note, doi, date        sql.NullString
		keywords, topics, auth sql.NullString
		category               string
	)
	if err := rows.Scan(
		&p.ID, &p.Title, &summary, &findings, &note, &keywords,
		&topics, &category, &auth, &date, &doi,
	); err != nil {
		return p, fmt.Errorf("scanning row: %w", err)
	}

	p.Summary = summary.String
	p.Findings = findings.String
	p.RelevanceNote = note.String
	p.DOI = doi.String

	if err := p.Category.UnmarshalText([]byte(category)); err != nil {
		return p, fmt.Errorf("publication %s: %w", p.ID, err)
	}
	for _, f := range []struct {
		raw sql.NullString
		dst *[]string
	}{{keywords, &p.Keywords}, {topics, &p.RelatedTopics}, {auth, &p.Authors}} {
		if !f.raw.Valid {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw.String), f.dst); err != nil {
			return p, fmt.Errorf("publication %s: decoding list: %w", p.ID, err)
		}
	}
	if date.String != "" {
		t, err := time.Parse(time.RFC3339, date.String)
		if err != nil {
			return p, fmt.Errorf("publication %s: parsing date: %w", p.ID, err)
		}
		p.PublicationDate = t
	}
	return p, nil
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
