// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &Store{db: db, dir: t.TempDir()}, mock
}

func TestSearchWrapsQueryError(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery("SELECT id, title").
		WithArgs("sleep", "circadian", "circadian", "circadian", "circadian", "circadian").
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.Search(context.Background(), types.NewCategorySet(types.CategorySleep), "Circadian")
	if err == nil || !strings.Contains(err.Error(), "querying index") {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSyncRollsBackOnWriteError(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT content_hash FROM publications").
		WithArgs("1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO publications").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	pub := types.Publication{
		ID: "1", Title: "T", Category: types.CategorySleep,
		Authors: []string{"A"}, PublicationDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	_, err := s.Sync(context.Background(), []types.Publication{pub}, &buf)
	if err == nil || !strings.Contains(err.Error(), "indexing 1") {
		t.Fatalf("expected indexing error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no progress should be written for a failed record, got %q", buf.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetNotFoundFromEmptyResult(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery("SELECT id, title").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "summary", "findings", "relevance_note", "keywords",
			"related_topics", "category", "authors", "publication_date", "doi",
		}))

	_, err := s.Get(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
