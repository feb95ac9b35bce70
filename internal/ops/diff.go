package ops

import (
	"context"

	"github.com/axsim/sim-cli/internal/imagediff"
)

// DiffResult reports a visual comparison between two screenshots.
type DiffResult struct {
	Result `yaml:",inline"`
	Diff   *imagediff.Result `yaml:"diff,omitempty" json:"diff,omitempty"`
}

// VisualDiff compares a baseline screenshot against a current one. A
// comparison exceeding the threshold is still a successful operation; the
// verdict lives in the diff payload. Mismatched dimensions are a failure.
func (o *Ops) VisualDiff(ctx context.Context, baselinePath, currentPath string, opts imagediff.Options) *DiffResult {
	if err := ctx.Err(); err != nil {
		return &DiffResult{Result: failed(err)}
	}
	res, err := imagediff.Compare(baselinePath, currentPath, opts)
	if err != nil {
		return &DiffResult{Result: failed(err)}
	}
	return &DiffResult{Result: succeeded(), Diff: res}
}
