// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bioscience-explorer/internal/corpus"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

func TestAnswerDecisionTable(t *testing.T) {
	tests := []struct {
		question       string
		wantRule       string
		wantRelated    []string
		wantConfidence float64
	}{
		{"What about muscle atrophy?", "muscle", []string{"4", "9"}, 0.92},
		{"ATROPHY rates", "muscle", []string{"4", "9"}, 0.92},
		{"How does cosmic radiation hurt crews?", "radiation", []string{"5"}, 0.89},
		{"bone density after flight", "bone", []string{"6"}, 0.94},
		{"tell me about gardening on the moon", "garden", []string{"3"}, 0.91},
		{"How can plants be grown on the lunar surface?", "plants", []string{"3"}, 0.91},
		{"what food do they eat", "plants", []string{"3"}, 0.91},
		{"mental health in isolation", "psychology", []string{"10"}, 0.87},
		{"infection risk", "immune", []string{"2", "7"}, 0.88},
		{"what is the weather today", DefaultRuleName, []string{"1", "2", "3"}, 0.75},
		{"", DefaultRuleName, []string{"1", "2", "3"}, 0.75},
	}
	m := Default()
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			res := m.Match(tt.question)
			assert.Equal(t, tt.wantRule, res.Rule)
			assert.Equal(t, tt.question, res.Question)
			assert.Equal(t, tt.wantRelated, res.RelatedPublications)
			assert.Equal(t, tt.wantConfidence, res.Confidence)
			assert.NotEmpty(t, res.Answer)
		})
	}
}

func TestRuleOrderIsSignificant(t *testing.T) {
	// Triggers from three rules; the earliest rule in the table wins.
	res := Default().Match("Does radiation or isolation cause muscle loss?")
	assert.Equal(t, "muscle", res.Rule)

	res = Default().Match("immune response to lunar dust")
	assert.Equal(t, "plants", res.Rule)

	// "garden" is checked after every topic rule.
	res = Default().Match("does gardening help mental health")
	assert.Equal(t, "psychology", res.Rule)
	assert.Equal(t, []string{"10"}, res.RelatedPublications)

	res = Default().Match("gardening and infection risk")
	assert.Equal(t, "immune", res.Rule)
}

func TestPackageAnswerMatchesDefault(t *testing.T) {
	s, err := corpus.Default()
	require.NoError(t, err)

	got := Answer("What about muscle atrophy?", s.All())
	assert.Equal(t, 0.92, got.Confidence)
	assert.Equal(t, []string{"4", "9"}, got.RelatedPublications)

	// The corpus is not consulted, so an empty corpus gives the same bundle.
	assert.Equal(t, got, Answer("What about muscle atrophy?", nil))
}

func TestResponsesAreIndependentCopies(t *testing.T) {
	m := Default()
	first := m.Answer("muscle", nil)
	first.RelatedPublications[0] = "mutated"
	second := m.Answer("muscle", nil)
	assert.Equal(t, []string{"4", "9"}, second.RelatedPublications)

	rules := m.Rules()
	rules[0].Name = "mutated"
	assert.Equal(t, "muscle", m.Rules()[0].Name)
}

func TestCustomMatcher(t *testing.T) {
	m := NewMatcher([]Rule{
		{Name: "stars", Triggers: []string{"star"}, Response: Response{Answer: "A", Related: []string{"x"}, Confidence: 0.5}},
	}, Response{Answer: "fallback", Confidence: 0.1})

	assert.Equal(t, "stars", m.Match("Starlight").Rule)
	res := m.Match("planets")
	assert.Equal(t, DefaultRuleName, res.Rule)
	assert.Equal(t, "fallback", res.Answer)
	assert.Empty(t, res.RelatedPublications)
}

func TestConfidenceInRange(t *testing.T) {
	m := Default()
	for _, r := range m.Rules() {
		assert.GreaterOrEqual(t, r.Response.Confidence, 0.0, r.Name)
		assert.LessOrEqual(t, r.Response.Confidence, 1.0, r.Name)
		for _, trig := range r.Triggers {
			assert.Equal(t, strings.ToLower(trig), trig, "trigger %q must be lowercase", trig)
		}
	}
}

func TestSuggestedQuestions(t *testing.T) {
	qs := SuggestedQuestions()
	require.Len(t, qs, 6)
	qs[0] = "mutated"
	assert.NotEqual(t, "mutated", SuggestedQuestions()[0])

	// "psychological" does not contain the "psychology" trigger.
	want := []string{"muscle", "radiation", "bone", "plants", DefaultRuleName, "immune"}
	m := Default()
	for i, q := range SuggestedQuestions() {
		assert.Equal(t, want[i], m.Match(q).Rule, q)
	}
}

// --- Asker ---

type fakeResolver struct {
	known map[string]types.Publication
}

func (f fakeResolver) Resolve(ids []string) []types.Publication {
	var out []types.Publication
	for _, id := range ids {
		if p, ok := f.known[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	a := NewAsker(nil, nil, types.AssistantConfig{})
	_, err := a.Ask(context.Background(), "  \n ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAskResolvesRelatedAndSkipsDangling(t *testing.T) {
	r := fakeResolver{known: map[string]types.Publication{
		"9": {ID: "9", Title: "EMS"},
	}}
	a := NewAsker(nil, r, types.AssistantConfig{})

	reply, err := a.Ask(context.Background(), "muscle loss")
	require.NoError(t, err)
	assert.Equal(t, "muscle", reply.Rule)
	assert.Equal(t, []string{"4", "9"}, reply.RelatedPublications)
	require.Len(t, reply.Publications, 1)
	assert.Equal(t, "9", reply.Publications[0].ID)
}

func TestAskWithCorpusStore(t *testing.T) {
	s, err := corpus.Default()
	require.NoError(t, err)
	a := NewAsker(Default(), s, types.AssistantConfig{})

	reply, err := a.Ask(context.Background(), "what is the weather today")
	require.NoError(t, err)
	require.Len(t, reply.Publications, 3)
	assert.Equal(t, "1", reply.Publications[0].ID)
}

func TestAskWaitsForDelay(t *testing.T) {
	a := NewAsker(nil, nil, types.AssistantConfig{ResponseDelay: 20 * time.Millisecond})

	start := time.Now()
	reply, err := a.Ask(context.Background(), "bone")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, "bone", reply.Rule)
	assert.NotNil(t, reply.Publications)
}

func TestAskCancelledDuringDelay(t *testing.T) {
	a := NewAsker(nil, nil, types.AssistantConfig{ResponseDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := a.Ask(ctx, "bone")
	assert.True(t, errors.Is(err, context.Canceled))
}
