//go:build darwin

package cmd

// Compile in the macOS provider. Its init registers itself with the
// platform package.
import _ "github.com/axsim/sim-cli/internal/platform/darwin"
