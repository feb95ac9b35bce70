package ops

import (
	"context"

	"github.com/axsim/sim-cli/internal/logger"
	"github.com/axsim/sim-cli/internal/model"
	"github.com/axsim/sim-cli/internal/platform"
)

// SnapshotResult carries a captured accessibility snapshot, nested by
// default or as a flat element list.
type SnapshotResult struct {
	Result   `yaml:",inline"`
	Snapshot *model.Snapshot     `yaml:"snapshot,omitempty" json:"snapshot,omitempty"`
	Elements []model.FlatElement `yaml:"elements,omitempty" json:"elements,omitempty"`
	Count    int                 `yaml:"element_count,omitempty" json:"element_count,omitempty"`
}

// CaptureSnapshot reads the accessibility tree of the device surface. With
// flat set the tree is returned as a depth-first element list instead of
// the nested structure.
func (o *Ops) CaptureSnapshot(ctx context.Context, opts platform.SnapshotOptions, flat bool) *SnapshotResult {
	snap, err := o.provider.Tree.CaptureTree(ctx, opts)
	if err != nil {
		return &SnapshotResult{Result: failed(err)}
	}
	logger.G(ctx).WithField("elements", snap.Count()).Debug("snapshot captured")

	res := &SnapshotResult{Result: succeeded(), Count: snap.Count()}
	if flat {
		res.Elements = snap.Flatten()
	} else {
		res.Snapshot = snap
	}
	return res
}

// QueryOptions selects elements from a fresh snapshot.
type QueryOptions struct {
	Snapshot   platform.SnapshotOptions
	Predicates model.Predicates
	// Index, when non-negative, selects a single match by traversal order.
	Index int
}

// QueryResult carries the elements matching a query.
type QueryResult struct {
	Result  `yaml:",inline"`
	Count   int           `yaml:"count" json:"count"`
	Matches []model.Match `yaml:"matches" json:"matches"`
}

// QueryElements captures a snapshot and returns the matching elements.
// Zero matches is a successful result with an empty list.
func (o *Ops) QueryElements(ctx context.Context, opts QueryOptions) *QueryResult {
	snap, err := o.provider.Tree.CaptureTree(ctx, opts.Snapshot)
	if err != nil {
		return &QueryResult{Result: failed(err)}
	}
	matches, err := model.Query(*snap, opts.Predicates)
	if err != nil {
		return &QueryResult{Result: failed(err)}
	}
	if opts.Index >= 0 {
		matches, err = model.SelectIndex(matches, opts.Index)
		if err != nil {
			return &QueryResult{Result: failed(platform.NewError(platform.CategoryNotFound, err))}
		}
	}
	return &QueryResult{Result: succeeded(), Count: len(matches), Matches: matches}
}

// ScreenMapResult carries a condensed summary of the current screen.
type ScreenMapResult struct {
	Result `yaml:",inline"`
	Device string           `yaml:"device,omitempty" json:"device,omitempty"`
	Map    *model.ScreenMap `yaml:"map,omitempty" json:"map,omitempty"`
}

// ScreenMap captures a snapshot and summarizes it for quick orientation:
// interactive elements, buttons, text fields, and navigation state.
func (o *Ops) ScreenMap(ctx context.Context, opts platform.SnapshotOptions) *ScreenMapResult {
	snap, err := o.provider.Tree.CaptureTree(ctx, opts)
	if err != nil {
		return &ScreenMapResult{Result: failed(err)}
	}
	m := model.Summarize(*snap)
	return &ScreenMapResult{Result: succeeded(), Device: snap.Device, Map: &m}
}
