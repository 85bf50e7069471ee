// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assistant answers research questions from a fixed decision table.
// Each rule is a set of lowercase trigger substrings with a canned answer;
// the first rule whose triggers appear in the question wins. There is no
// language model behind it.
package assistant

import (
	"slices"
	"strings"

	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

// DefaultRuleName identifies the fallback answer in Result.Rule.
const DefaultRuleName = "default"

// Response is a canned answer bundle.
type Response struct {
	Answer     string
	Related    []string
	Confidence float64
}

// Rule pairs a trigger predicate with its response.
type Rule struct {
	Name     string
	Triggers []string
	Response Response
}

// Matches reports whether any trigger is a substring of the lowercased question.
func (r Rule) Matches(lowered string) bool {
	for _, t := range r.Triggers {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

var plantsResponse = Response{
	Answer:     "NASA's Veggie system demonstrates that AI-enhanced plant production can achieve 95% automation with 35% yield improvement in simulated lunar conditions. The system uses machine learning to optimize LED spectra and nutrient timing based on real-time plant health sensors. This technology is fundamental for establishing self-sustaining lunar bases and Mars colonies with reliable fresh food production.",
	Related:    []string{"3"},
	Confidence: 0.91,
}

// The related ids point into the bundled corpus and go stale if it is
// replaced.
var defaultRules = []Rule{
	{
		Name:     "muscle",
		Triggers: []string{"muscle", "atrophy"},
		Response: Response{
			Answer:     "NASA research shows that astronauts lose significant muscle mass in microgravity, with studies demonstrating up to 20% loss in weight-bearing muscles during 6-month missions. Advanced countermeasures include personalized AI-driven exercise protocols that reduce muscle mass loss by 60% compared to standard regimens. Electrical muscle stimulation (EMS) combined with resistance exercise shows superior results for Mars transit where exercise equipment may be limited.",
			Related:    []string{"4", "9"},
			Confidence: 0.92,
		},
	},
	{
		Name:     "radiation",
		Triggers: []string{"radiation", "cosmic"},
		Response: Response{
			Answer:     "Galactic cosmic radiation poses a major threat to Mars crews outside Earth's magnetic field. NASA has developed advanced shielding materials including hydrogenated carbon nanotubes and polyethylene composites that provide 50% better protection than aluminum while reducing mass by 40%. These materials are critical for protecting crews during the 6-9 month Mars transit and multi-year surface operations.",
			Related:    []string{"5"},
			Confidence: 0.89,
		},
	},
	{
		Name:     "bone",
		Triggers: []string{"bone", "density"},
		Response: Response{
			Answer:     "Bone loss is a critical concern for Mars missions. Astronauts lose 1-2% bone mass per month in microgravity. Recent NASA research shows that combined bisphosphonate therapy with zoledronic acid and resistance exercise reduces bone loss to just 0.3% per month - an 80% improvement. This pharmaceutical approach is essential for multi-year Mars missions where bone fractures could be mission-critical emergencies.",
			Related:    []string{"6"},
			Confidence: 0.94,
		},
	},
	{
		Name:     "plants",
		Triggers: []string{"plant", "grow", "lunar", "food"},
		Response: plantsResponse,
	},
	{
		Name:     "psychology",
		Triggers: []string{"psychology", "mental", "isolation"},
		Response: Response{
			Answer:     "Psychological resilience is crucial for Mars mission success. NASA research shows that AI-powered mental health monitoring combined with VR therapy and peer support reduces psychological distress by 55% in isolated crews. The studies validate comprehensive psychological support protocols including autonomous mental health interventions for situations where Earth communication delays make real-time support impossible.",
			Related:    []string{"10"},
			Confidence: 0.87,
		},
	},
	{
		Name:     "immune",
		Triggers: []string{"immune", "infection"},
		Response: Response{
			Answer:     "Space environments cause significant immune system dysfunction. Mars analog studies show combined stressors cause 40% reduction in T-cell proliferation and 60% reduction in vaccine efficacy. NASA has identified specific immune pathways affected by space conditions and developed targeted pharmaceutical countermeasures to maintain crew health during missions where infectious diseases could be catastrophic.",
			Related:    []string{"2", "7"},
			Confidence: 0.88,
		},
	},
	// Checked last so questions that also mention a later topic keep that
	// topic's answer.
	{
		Name:     "garden",
		Triggers: []string{"garden"},
		Response: plantsResponse,
	},
}

var defaultFallback = Response{
	Answer:     "Based on NASA's extensive bioscience research, space environments present multiple physiological challenges for human crews. The publications in this database cover critical areas including bone and muscle loss, immune dysfunction, radiation protection, psychological health, and life support systems. These research findings are essential for planning safe and successful Moon and Mars missions.",
	Related:    []string{"1", "2", "3"},
	Confidence: 0.75,
}

var suggestedQuestions = []string{
	"What has NASA learned about muscle atrophy in microgravity?",
	"How does radiation affect astronaut health during Mars missions?",
	"What are the best countermeasures for bone loss in space?",
	"How can plants be grown on the lunar surface?",
	"What psychological challenges do astronauts face on Mars missions?",
	"How does the immune system change during long space flights?",
}

// SuggestedQuestions returns the prompts offered before the first question.
func SuggestedQuestions() []string {
	return slices.Clone(suggestedQuestions)
}

// Result is a response together with the rule that produced it.
type Result struct {
	types.QAResponse
	Rule string `json:"rule"`
}

// Matcher evaluates an ordered rule list. The zero value is not usable;
// use NewMatcher or Default.
type Matcher struct {
	rules    []Rule
	fallback Response
}

// NewMatcher builds a matcher over rules (evaluated in order) with fallback
// as the answer when nothing matches.
func NewMatcher(rules []Rule, fallback Response) *Matcher {
	return &Matcher{rules: slices.Clone(rules), fallback: fallback}
}

// Default returns the matcher with the built-in decision table.
func Default() *Matcher {
	return NewMatcher(defaultRules, defaultFallback)
}

// Rules returns the decision table in evaluation order.
func (m *Matcher) Rules() []Rule {
	return slices.Clone(m.rules)
}

// Match returns the response bundle for question and the name of the rule
// that selected it.
func (m *Matcher) Match(question string) Result {
	lowered := strings.ToLower(question)
	for _, r := range m.rules {
		if r.Matches(lowered) {
			return Result{QAResponse: bundle(question, r.Response), Rule: r.Name}
		}
	}
	return Result{QAResponse: bundle(question, m.fallback), Rule: DefaultRuleName}
}

// Answer returns the canned response for question. The corpus is not
// consulted: related ids are fixed per rule and left for the consumer to
// resolve.
func (m *Matcher) Answer(question string, _ []types.Publication) types.QAResponse {
	return m.Match(question).QAResponse
}

// Answer runs the built-in decision table.
func Answer(question string, corpus []types.Publication) types.QAResponse {
	return Default().Answer(question, corpus)
}

func bundle(question string, r Response) types.QAResponse {
	return types.QAResponse{
		Question:            question,
		Answer:              r.Answer,
		RelatedPublications: slices.Clone(r.Related),
		Confidence:          r.Confidence,
	}
}
