package model

import "github.com/axsim/sim-cli/internal/geometry"

// ElementNode is one UI element in a captured accessibility tree.
// Nodes are constructed once per capture and never mutated afterwards.
type ElementNode struct {
	Role        string        `yaml:"role"                 json:"role"`                 // e.g. Button, StaticText, Group
	Label       string        `yaml:"label,omitempty"      json:"label,omitempty"`      // visible label / title
	Value       string        `yaml:"value,omitempty"      json:"value,omitempty"`      // current value
	Description string        `yaml:"desc,omitempty"       json:"desc,omitempty"`       // accessibility description
	Identifier  string        `yaml:"id,omitempty"         json:"id,omitempty"`         // stable accessibility identifier
	Frame       geometry.Rect `yaml:"frame"                json:"frame"`                // simulator logical points
	Enabled     *bool         `yaml:"enabled,omitempty"    json:"enabled,omitempty"`    // nil or true = enabled (omitted); false = disabled
	Focused     bool          `yaml:"focused,omitempty"    json:"focused,omitempty"`    // has keyboard focus
	Children    []ElementNode `yaml:"children,omitempty"   json:"children,omitempty"`   // z/visual order as reported by the accessibility layer
	Truncated   bool          `yaml:"truncated,omitempty"  json:"truncated,omitempty"`  // subtree cut off at max depth
}

// Center returns the midpoint of the element's frame in logical points.
func (e ElementNode) Center() geometry.Point {
	return e.Frame.Center()
}

// Text returns the element's best display text: label, then description,
// then value.
func (e ElementNode) Text() string {
	if e.Label != "" {
		return e.Label
	}
	if e.Description != "" {
		return e.Description
	}
	return e.Value
}
