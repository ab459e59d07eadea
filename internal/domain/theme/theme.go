// Package theme classifies travel queries into coarse intent categories
// and narrows retrieved graph facts to the detected category. Detection is
// plain keyword matching over normalized text; it deliberately knows
// nothing about any provider.
package theme

import (
	"strings"

	"github.com/kailas-cloud/tripweaver/internal/domain"
)

// Theme is a coarse travel intent category.
type Theme string

const (
	Romantic  Theme = "romantic"
	Adventure Theme = "adventure"
	Cultural  Theme = "cultural"
	Family    Theme = "family"
	None      Theme = "none"
)

// fallbackFactLimit caps the facts kept when filtering removes everything:
// an itinerary with no supporting facts is worse than an off-theme one.
const fallbackFactLimit = 10

// keywordTable holds a theme with its keyword set. Order is priority order:
// the first theme with any keyword hit wins.
type keywordTable struct {
	theme    Theme
	keywords []string
}

var tables = []keywordTable{
	{Romantic, []string{"romantic", "couple", "honeymoon", "sunset", "beach", "spa", "dinner", "cruise"}},
	{Adventure, []string{"adventure", "hiking", "trekking", "mountain", "rafting", "cycling", "kayak"}},
	{Cultural, []string{"cultural", "culture", "temple", "museum", "historical", "heritage", "traditional"}},
	{Family, []string{"family", "kids", "children", "zoo", "park", "entertainment"}},
}

// Detect scans the normalized query text for theme keywords. The first
// theme in priority order with at least one hit wins; no hit yields None.
func Detect(query string) Theme {
	text := domain.NormalizeQuery(query)
	if text == "" {
		return None
	}
	for _, t := range tables {
		for _, kw := range t.keywords {
			if strings.Contains(text, kw) {
				return t.theme
			}
		}
	}
	return None
}

// Keywords returns the keyword set for a theme, nil for None.
func Keywords(t Theme) []string {
	for _, tbl := range tables {
		if tbl.theme == t {
			return tbl.keywords
		}
	}
	return nil
}

// Filter keeps only facts whose name, description, or tags contain at
// least one keyword of the theme. It never reorders, only removes.
// None passes everything through. When the filter would remove every
// fact, the first facts are kept instead so the prompt is never starved.
func Filter(facts []domain.GraphFact, t Theme) []domain.GraphFact {
	keywords := Keywords(t)
	if len(keywords) == 0 {
		return facts
	}

	var filtered []domain.GraphFact
	for _, f := range facts {
		if factMatches(f, keywords) {
			filtered = append(filtered, f)
		}
	}

	if len(filtered) == 0 {
		if len(facts) > fallbackFactLimit {
			return facts[:fallbackFactLimit]
		}
		return facts
	}
	return filtered
}

func factMatches(f domain.GraphFact, keywords []string) bool {
	name := strings.ToLower(f.ToName)
	desc := strings.ToLower(f.Description)
	tags := strings.ToLower(strings.Join(f.Tags, " "))

	for _, kw := range keywords {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) || strings.Contains(tags, kw) {
			return true
		}
	}
	return false
}
