package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axsim/sim-cli/internal/geometry"
)

func targetCommand(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	addTargetFlags(cmd)
	cmd.SetArgs(args)
	_ = cmd.Execute()
	return cmd
}

func TestParseTargetPositionalPoint(t *testing.T) {
	cmd := targetCommand()

	target, err := parseTarget(cmd, []string{"195,422"})
	require.NoError(t, err)
	require.NotNil(t, target.Point)
	assert.Equal(t, geometry.Point{X: 195, Y: 422}, *target.Point)

	_, err = parseTarget(cmd, []string{"195;422"})
	assert.Error(t, err)

	// No positional argument falls through to the flags.
	target, err = parseTarget(cmd, nil)
	require.NoError(t, err)
	assert.Nil(t, target.Point)
}

func TestParseTargetFlagsCoordinates(t *testing.T) {
	cmd := targetCommand("--x", "195", "--y", "422")

	target := parseTargetFlags(cmd)
	require.NotNil(t, target.Point)
	assert.Equal(t, geometry.Point{X: 195, Y: 422}, *target.Point)
	assert.Nil(t, target.Predicates)
	assert.Equal(t, -1, target.Index)
}

func TestParseTargetFlagsQuery(t *testing.T) {
	cmd := targetCommand("--text", "Login", "--role", "Button", "--index", "1")

	target := parseTargetFlags(cmd)
	require.Nil(t, target.Point)
	require.NotNil(t, target.Predicates)
	assert.Equal(t, "Login", target.Predicates.TextContains)
	assert.Equal(t, "Button", target.Predicates.Role)
	assert.Equal(t, 1, target.Index)
}

func TestParseTargetFlagsCoordinatesNeedBoth(t *testing.T) {
	// Only --x set: falls back to a query target.
	cmd := targetCommand("--x", "100", "--text", "Login")

	target := parseTargetFlags(cmd)
	assert.Nil(t, target.Point)
	require.NotNil(t, target.Predicates)
	assert.Equal(t, "Login", target.Predicates.TextContains)
}

func TestParsePathFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	addPathFlags(cmd)
	cmd.SetArgs([]string{"--from-x", "100", "--from-y", "600", "--to-x", "100", "--to-y", "200"})
	require.NoError(t, cmd.Execute())

	from, to := parsePathFlags(cmd)
	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, geometry.Point{X: 100, Y: 600}, *from)
	assert.Equal(t, geometry.Point{X: 100, Y: 200}, *to)
}

func TestParsePathFlagsPartialIsNil(t *testing.T) {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	addPathFlags(cmd)
	cmd.SetArgs([]string{"--from-x", "100"})
	require.NoError(t, cmd.Execute())

	from, to := parsePathFlags(cmd)
	assert.Nil(t, from)
	assert.Nil(t, to)
}
