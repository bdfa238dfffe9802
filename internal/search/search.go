// Package search implements the case-insensitive, locale-aware substring
// match used to filter clipboard history.
package search

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/berrythewa/pastepal/internal/types"
)

// Matcher folds text before comparing it. The zero value is not usable; use
// NewMatcher.
type Matcher struct {
	newCaser func() cases.Caser
	locale   string
}

// NewMatcher returns a Matcher for the given BCP-47 locale. An empty locale
// selects full Unicode case folding, which suits most languages.
func NewMatcher(locale string) (*Matcher, error) {
	if locale == "" {
		return &Matcher{newCaser: func() cases.Caser { return cases.Fold() }}, nil
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search locale %q: %w", locale, err)
	}
	return &Matcher{
		newCaser: func() cases.Caser { return cases.Lower(tag) },
		locale:   tag.String(),
	}, nil
}

// Locale returns the canonical locale, or "" for locale-independent folding.
func (m *Matcher) Locale() string {
	return m.locale
}

// Contains reports whether query occurs in text, ignoring case.
// An empty query is contained in everything.
func (m *Matcher) Contains(text, query string) bool {
	if query == "" {
		return true
	}
	// Casers carry state and must not be shared across goroutines.
	c := m.newCaser()
	return strings.Contains(m.fold(c, text), m.fold(c, query))
}

// Filter returns the items whose content contains query, in their original
// order. An empty query returns items unchanged.
func (m *Matcher) Filter(items []types.ClipboardItem, query string) []types.ClipboardItem {
	if query == "" {
		return items
	}

	c := m.newCaser()
	needle := m.fold(c, query)
	filtered := make([]types.ClipboardItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(m.fold(c, item.Content), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (m *Matcher) fold(c cases.Caser, s string) string {
	return c.String(norm.NFC.String(s))
}
