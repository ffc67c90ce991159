// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package conditions holds the static taxonomy of canonical weather
// categories. Every provider reports conditions in its own vocabulary; the
// taxonomy folds them into a small fixed set so that observations from
// different providers become comparable.
package conditions

import (
	"strings"
)

// Category is one canonical weather condition with the keywords that map a
// provider's free-text condition onto it and the glyph used for display.
type Category struct {
	Name     string
	Keywords []string
	Glyph    string
}

// Taxonomy is an immutable, ordered set of categories. The order is a strict
// match priority: more specific categories come before their broader
// supersets, so "Partly Cloudy" is tested before "Cloudy".
type Taxonomy struct {
	categories   []Category
	defaultGlyph string
}

// DefaultGlyph is shown when no category matches a condition string.
const DefaultGlyph = "🌡️"

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return &Taxonomy{
		defaultGlyph: DefaultGlyph,
		categories: []Category{
			{Name: "Partly Cloudy", Keywords: []string{"partly"}, Glyph: "⛅"},
			{Name: "Clear", Keywords: []string{"clear", "sunny"}, Glyph: "☀️"},
			{Name: "Cloudy", Keywords: []string{"cloud", "overcast"}, Glyph: "☁️"},
			{Name: "Rainy", Keywords: []string{"rain", "drizzle"}, Glyph: "🌧️"},
			{Name: "Snowy", Keywords: []string{"snow", "sleet"}, Glyph: "❄️"},
			{Name: "Foggy", Keywords: []string{"fog", "mist"}, Glyph: "🌫️"},
			{Name: "Stormy", Keywords: []string{"storm", "thunder"}, Glyph: "⛈️"},
		},
	}
}

// Categories returns a copy of the taxonomy's category list in match
// priority order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Normalize folds a provider condition string into its canonical category
// name. The first category whose keyword matches wins. Unmatched strings pass
// through unchanged; an empty string stays empty.
func (t *Taxonomy) Normalize(condition string) string {
	if cat, ok := t.match(condition); ok {
		return cat.Name
	}
	return condition
}

// Glyph returns the display glyph for a condition string, or the default
// "no data" glyph when no category matches.
func (t *Taxonomy) Glyph(condition string) string {
	if cat, ok := t.match(condition); ok {
		return cat.Glyph
	}
	return t.defaultGlyph
}

func (t *Taxonomy) match(condition string) (Category, bool) {
	lower := strings.ToLower(condition)
	for _, cat := range t.categories {
		for _, keyword := range cat.Keywords {
			if strings.Contains(lower, keyword) {
				return cat, true
			}
		}
	}
	return Category{}, false
}

// MapWMOCode converts a WMO weather code into a readable condition string.
// WMO codes: 0=Clear, 1-3=partly cloudy, 45-48=fog, 51-67=rain, 71-86=snow,
// 95+=thunderstorms.
func MapWMOCode(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 3:
		return "Partly Cloudy"
	case code <= 48:
		return "Foggy"
	case code <= 67:
		return "Rainy"
	case code <= 86:
		return "Snowy"
	default:
		return "Stormy"
	}
}
