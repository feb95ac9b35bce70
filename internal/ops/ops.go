// Package ops implements the public operations behind every command and
// MCP tool. Each operation returns a structured result carrying a success
// flag and, on failure, a message plus error category, so automation
// callers never have to parse error strings.
package ops

import (
	"github.com/pkg/errors"

	"github.com/axsim/sim-cli/internal/gesture"
	"github.com/axsim/sim-cli/internal/imagediff"
	"github.com/axsim/sim-cli/internal/platform"
)

// Result is the common envelope embedded in every operation result.
type Result struct {
	Success       bool              `yaml:"success" json:"success"`
	Error         string            `yaml:"error,omitempty" json:"error,omitempty"`
	ErrorCategory platform.Category `yaml:"error_category,omitempty" json:"error_category,omitempty"`
}

func succeeded() Result {
	return Result{Success: true}
}

func failed(err error) Result {
	return Result{
		Success:       false,
		Error:         err.Error(),
		ErrorCategory: categorize(err),
	}
}

// categorize maps sentinel errors from the pure computation packages onto
// the shared taxonomy, then falls back to the platform categorization.
func categorize(err error) platform.Category {
	switch {
	case errors.Is(err, gesture.ErrOutOfBounds):
		return platform.CategoryOutOfBounds
	case errors.Is(err, imagediff.ErrDimensionMismatch):
		return platform.CategoryDimensionMismatch
	default:
		return platform.CategoryOf(err)
	}
}

// Ops executes operations against a platform provider.
type Ops struct {
	provider *platform.Provider
}

// New creates an operations executor backed by the given provider.
func New(provider *platform.Provider) *Ops {
	return &Ops{provider: provider}
}
