// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/bioscience-explorer/internal/assistant"
	"github.com/pdiddy/bioscience-explorer/internal/filter"
	"github.com/pdiddy/bioscience-explorer/internal/stats"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// maxQuestionBytes bounds the POST /api/questions body.
const maxQuestionBytes = 16 << 10

type categoryResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type publicationsResponse struct {
	Count        int                 `json:"count"`
	Publications []types.Publication `json:"publications"`
}

type questionRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"publications": s.corpus.Len(),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	counts := stats.CategoryCounts(s.corpus.All())
	resp := make([]categoryResponse, 0, types.NumCategories)
	for _, c := range types.Categories() {
		resp = append(resp, categoryResponse{Name: c.String(), Label: c.Label(), Count: counts.Get(c)})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublications(w http.ResponseWriter, r *http.Request) {
	subset, ok := s.filtered(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, publicationsResponse{Count: len(subset), Publications: subset})
}

func (s *Server) handlePublication(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := s.corpus.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("publication %q not found", id))
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	year := s.now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid year %q", v))
			return
		}
		year = y
	}

	subset, ok := s.filtered(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, stats.Aggregate(subset, year, s.statOpts))
}

func (s *Server) handleSuggested(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{
		"questions": assistant.SuggestedQuestions(),
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuestionBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	reply, err := s.asker.Ask(r.Context(), req.Question)
	switch {
	case errors.Is(err, assistant.ErrEmptyQuestion):
		s.writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.writeError(w, http.StatusServiceUnavailable, fmt.Errorf("answering question: %w", err))
		return
	}

	if s.metrics != nil {
		s.metrics.RecordQuestion(reply.Rule)
	}
	s.writeJSON(w, http.StatusOK, reply)
}

// filtered applies the q and category query parameters to the corpus. It
// writes a 400 and returns false for an unknown category.
func (s *Server) filtered(w http.ResponseWriter, r *http.Request) ([]types.Publication, bool) {
	q := r.URL.Query()

	var names []string
	for _, v := range q["category"] {
		names = append(names, strings.Split(v, ",")...)
	}
	cats, err := types.ParseCategorySet(names)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return nil, false
	}

	subset := filter.Filter(s.corpus.All(), cats, q.Get("q"))
	if s.metrics != nil {
		s.metrics.RecordSearch(len(subset))
	}
	return subset, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("marshaling response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("HTTP error", "status", status, "error", err.Error())
	}
	data, _ := json.Marshal(errorResponse{Error: err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}
