package model

import (
	"time"

	"github.com/axsim/sim-cli/internal/geometry"
)

// Snapshot is a point-in-time capture of a target's accessibility tree.
// It is a value: shared freely, never mutated. A fresh query of the live UI
// requires a fresh Snapshot.
type Snapshot struct {
	// Target identifies what was captured (simulator UDID).
	Target string `yaml:"target" json:"target"`
	// Device is the human-readable device name.
	Device string `yaml:"device,omitempty" json:"device,omitempty"`
	// CapturedAt is the capture timestamp.
	CapturedAt time.Time `yaml:"captured_at" json:"captured_at"`
	// Geometry declares the coordinate space: all frames are in simulator
	// logical points with this scale factor.
	Geometry geometry.ScreenGeometry `yaml:"geometry" json:"geometry"`
	// Root is the top of the element tree.
	Root ElementNode `yaml:"root" json:"root"`
}

// FlatElement is an element with a breadcrumb path instead of children.
type FlatElement struct {
	Role        string        `yaml:"role"               json:"role"`
	Label       string        `yaml:"label,omitempty"    json:"label,omitempty"`
	Value       string        `yaml:"value,omitempty"    json:"value,omitempty"`
	Description string        `yaml:"desc,omitempty"     json:"desc,omitempty"`
	Identifier  string        `yaml:"id,omitempty"       json:"id,omitempty"`
	Frame       geometry.Rect `yaml:"frame"              json:"frame"`
	Enabled     *bool         `yaml:"enabled,omitempty"  json:"enabled,omitempty"`
	Focused     bool          `yaml:"focused,omitempty"  json:"focused,omitempty"`
	Path        string        `yaml:"path"               json:"path"`
}

// Flatten converts the snapshot's tree into a depth-first list, preserving
// the capture's traversal order. Each entry gets a path breadcrumb of
// role[label] segments joined with " > ".
func (s Snapshot) Flatten() []FlatElement {
	var result []FlatElement
	flattenNode(s.Root, "", &result)
	return result
}

func flattenNode(el ElementNode, parentPath string, result *[]FlatElement) {
	segment := el.Role
	if label := el.Text(); label != "" {
		segment += "[" + label + "]"
	}
	path := segment
	if parentPath != "" {
		path = parentPath + " > " + segment
	}

	*result = append(*result, FlatElement{
		Role:        el.Role,
		Label:       el.Label,
		Value:       el.Value,
		Description: el.Description,
		Identifier:  el.Identifier,
		Frame:       el.Frame,
		Enabled:     el.Enabled,
		Focused:     el.Focused,
		Path:        path,
	})

	for _, child := range el.Children {
		flattenNode(child, path, result)
	}
}

// Count returns the number of elements in the snapshot.
func (s Snapshot) Count() int {
	return countNodes(s.Root)
}

func countNodes(el ElementNode) int {
	n := 1
	for _, child := range el.Children {
		n += countNodes(child)
	}
	return n
}
