package model

import (
	"fmt"
	"strings"

	"github.com/axsim/sim-cli/internal/geometry"
)

// Predicates filters a Snapshot's elements. All set fields must match
// (AND semantics). At least one field must be set.
type Predicates struct {
	// TextContains matches elements whose label, value, or description
	// contains this substring, case-insensitively.
	TextContains string
	// TextExact matches elements with a label, value, or description equal
	// to this string.
	TextExact string
	// Role matches the element role; the AX prefix is accepted and ignored,
	// so "Button" and "AXButton" are equivalent.
	Role string
	// Identifier matches the stable accessibility identifier exactly.
	Identifier string
}

// Validate returns an error when no predicate is set. An unfiltered query is
// a caller error: use a snapshot for whole-tree reads.
func (p Predicates) Validate() error {
	if p.TextContains == "" && p.TextExact == "" && p.Role == "" && p.Identifier == "" {
		return fmt.Errorf("at least one predicate is required: text, exact, role, or id")
	}
	return nil
}

// Match is one query result: the element, its center point in logical
// points, and its structural path from the root.
type Match struct {
	Element FlatElement    `yaml:"element" json:"element"`
	Center  geometry.Point `yaml:"center"  json:"center"`
	Path    string         `yaml:"path"    json:"path"`
}

// Query returns all elements of the snapshot matching the predicates, in the
// snapshot's traversal order. It is a pure function of the snapshot value and
// the predicates: the same inputs always produce the same output. Zero
// matches returns an empty slice, not an error.
func Query(s Snapshot, p Predicates) ([]Match, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	role := MapRole(p.Role)
	textLower := strings.ToLower(p.TextContains)

	matches := []Match{}
	for _, el := range s.Flatten() {
		if p.Role != "" && el.Role != role {
			continue
		}
		if p.Identifier != "" && el.Identifier != p.Identifier {
			continue
		}
		if p.TextContains != "" && !containsText(el, textLower) {
			continue
		}
		if p.TextExact != "" && !equalsText(el, p.TextExact) {
			continue
		}
		matches = append(matches, Match{
			Element: el,
			Center:  el.Frame.Center(),
			Path:    el.Path,
		})
	}
	return matches, nil
}

// SelectIndex narrows matches to the Nth one (0-based). Ambiguity between
// equally valid matches is always resolved by traversal order, so a given
// index is deterministic for a given snapshot.
func SelectIndex(matches []Match, index int) ([]Match, error) {
	if index < 0 || index >= len(matches) {
		return nil, fmt.Errorf("index %d out of range: query produced %d match(es)", index, len(matches))
	}
	return matches[index : index+1], nil
}

func containsText(el FlatElement, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Label), textLower) ||
		strings.Contains(strings.ToLower(el.Value), textLower) ||
		strings.Contains(strings.ToLower(el.Description), textLower)
}

func equalsText(el FlatElement, text string) bool {
	return el.Label == text || el.Value == text || el.Description == text
}
