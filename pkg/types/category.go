// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is a research-domain tag. The set of categories is closed: every
// value below numCategories is valid and nothing else is.
type Category uint8

const (
	CategoryHumanHealth Category = iota
	CategoryMicrobiology
	CategoryPlants
	CategoryRadiation
	CategoryImmuneSystem
	CategoryBoneDensity
	CategoryMuscleAtrophy
	CategoryPsychology
	CategoryNutrition
	CategorySleep
	CategoryCardiovascular

	numCategories
)

// NumCategories is the size of the category enumeration.
const NumCategories = int(numCategories)

var categoryNames = [NumCategories]string{
	CategoryHumanHealth:    "human_health",
	CategoryMicrobiology:   "microbiology",
	CategoryPlants:         "plants",
	CategoryRadiation:      "radiation",
	CategoryImmuneSystem:   "immune_system",
	CategoryBoneDensity:    "bone_density",
	CategoryMuscleAtrophy:  "muscle_atrophy",
	CategoryPsychology:     "psychology",
	CategoryNutrition:      "nutrition",
	CategorySleep:          "sleep",
	CategoryCardiovascular: "cardiovascular",
}

var categoryLabels = [NumCategories]string{
	CategoryHumanHealth:    "Human Health",
	CategoryMicrobiology:   "Microbiology",
	CategoryPlants:         "Plant Biology",
	CategoryRadiation:      "Radiation Studies",
	CategoryImmuneSystem:   "Immune System",
	CategoryBoneDensity:    "Bone Density",
	CategoryMuscleAtrophy:  "Muscle Atrophy",
	CategoryPsychology:     "Psychology",
	CategoryNutrition:      "Nutrition",
	CategorySleep:          "Sleep Research",
	CategoryCardiovascular: "Cardiovascular",
}

// Categories returns every category in canonical order.
func Categories() []Category {
	all := make([]Category, NumCategories)
	for i := range all {
		all[i] = Category(i)
	}
	return all
}

// ParseCategory maps a snake_case name (e.g. "bone_density") to its Category.
// Matching ignores surrounding whitespace and case.
func ParseCategory(name string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == key {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	return int(c) < NumCategories
}

// String returns the snake_case name used in data files and URLs.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// Label returns the human-readable display name.
func (c Category) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return categoryLabels[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", uint8(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names are rejected,
// which keeps every decoded Publication inside the closed enumeration.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CategorySet is an unordered set of categories. It is a value type, so
// copies never alias.
type CategorySet uint16

// NewCategorySet returns a set holding the given categories.
func NewCategorySet(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		s = s.Add(c)
	}
	return s
}

// ParseCategorySet parses a list of category names. Empty names are skipped.
func ParseCategorySet(names []string) (CategorySet, error) {
	var s CategorySet
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		c, err := ParseCategory(n)
		if err != nil {
			return 0, err
		}
		s = s.Add(c)
	}
	return s, nil
}

func (s CategorySet) Add(c Category) CategorySet {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

func (s CategorySet) Remove(c Category) CategorySet {
	return s &^ (1 << c)
}

// Toggle adds c when absent and removes it when present.
func (s CategorySet) Toggle(c Category) CategorySet {
	if s.Has(c) {
		return s.Remove(c)
	}
	return s.Add(c)
}

func (s CategorySet) Has(c Category) bool {
	return c.Valid() && s&(1<<c) != 0
}

func (s CategorySet) IsEmpty() bool {
	return s == 0
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	n := 0
	for _, c := range Categories() {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Slice returns the members in canonical order.
func (s CategorySet) Slice() []Category {
	var out []Category
	for _, c := range Categories() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// CategoryCounts holds one counter per category. Being an array sized by the
// enumeration, it always has an entry for every category.
type CategoryCounts [NumCategories]int

// Get returns the count for c.
func (cc CategoryCounts) Get(c Category) int {
	if !c.Valid() {
		return 0
	}
	return cc[c]
}

// Sum returns the total across all categories.
func (cc CategoryCounts) Sum() int {
	total := 0
	for _, n := range cc {
		total += n
	}
	return total
}

// Map returns the counts keyed by category name, including zero entries.
func (cc CategoryCounts) Map() map[string]int {
	m := make(map[string]int, NumCategories)
	for i, n := range cc {
		m[categoryNames[i]] = n
	}
	return m
}

// MarshalJSON encodes the counts as an object keyed by category name.
func (cc CategoryCounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(cc.Map())
}

// MarshalYAML encodes the counts as a mapping keyed by category name.
func (cc CategoryCounts) MarshalYAML() (any, error) {
	return cc.Map(), nil
}
