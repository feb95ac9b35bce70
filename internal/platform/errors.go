package platform

import (
	"context"
	"errors"
	"fmt"
)

// Category classifies a failure so callers can react without parsing
// messages. Every public operation reports one of these on failure.
type Category string

const (
	// CategoryNotFound means the target surface, window, or device is missing.
	CategoryNotFound Category = "not_found"
	// CategoryPermission means an OS-level accessibility or automation
	// permission is not granted. Never retried silently: the caller must
	// prompt the user for remediation.
	CategoryPermission Category = "permission"
	// CategoryOutOfBounds means a computed coordinate lies outside the
	// screen geometry.
	CategoryOutOfBounds Category = "out_of_bounds"
	// CategoryTargetUnavailable means the surface is not focused or visible
	// for input dispatch.
	CategoryTargetUnavailable Category = "target_unavailable"
	// CategoryDimensionMismatch means a visual diff was attempted on
	// differently-sized images.
	CategoryDimensionMismatch Category = "dimension_mismatch"
	// CategoryTimeout means a wall-clock bound expired before the operation
	// completed.
	CategoryTimeout Category = "timeout"
	// CategoryInternal covers everything else.
	CategoryInternal Category = "internal"
)

// Error attaches a Category to an underlying error.
type Error struct {
	Category Category
	Err      error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a category. A nil err returns nil.
func NewError(category Category, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Category: category, Err: err}
}

// Errorf builds a categorized error from a format string.
func Errorf(category Category, format string, args ...interface{}) error {
	return &Error{Category: category, Err: fmt.Errorf(format, args...)}
}

// CategoryOf extracts the category from an error chain. Context deadline
// expiry maps to timeout; anything uncategorized is internal.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Category
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	return CategoryInternal
}
