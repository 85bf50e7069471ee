// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("question is empty")

// Resolver maps related-publication ids to records, skipping unknown ids.
// *corpus.Store satisfies it.
type Resolver interface {
	Resolve(ids []string) []types.Publication
}

// Asker wraps the matcher for interactive use: it rejects blank questions,
// waits an artificial delay to simulate a model call, then answers.
type Asker struct {
	matcher  *Matcher
	resolver Resolver
	delay    time.Duration
}

// NewAsker returns an Asker. A nil matcher uses the built-in table.
func NewAsker(m *Matcher, resolver Resolver, cfg types.AssistantConfig) *Asker {
	if m == nil {
		m = Default()
	}
	return &Asker{matcher: m, resolver: resolver, delay: cfg.ResponseDelay}
}

// Reply is an assistant result with its related publications resolved.
type Reply struct {
	Result
	Publications []types.Publication `json:"publications"`
}

// Ask answers question after the configured delay. Cancelling ctx during the
// wait returns ctx.Err().
func (a *Asker) Ask(ctx context.Context, question string) (Reply, error) {
	if strings.TrimSpace(question) == "" {
		return Reply{}, ErrEmptyQuestion
	}

	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-timer.C:
		}
	}

	res := a.matcher.Match(question)
	ans := Reply{Result: res, Publications: []types.Publication{}}
	if a.resolver != nil {
		ans.Publications = a.resolver.Resolve(res.RelatedPublications)
	}
	return ans, nil
}
