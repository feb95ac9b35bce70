package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenPreservesTraversalOrder(t *testing.T) {
	s := loginSnapshot()
	flat := s.Flatten()

	var roles []string
	for _, el := range flat {
		roles = append(roles, el.Role)
	}
	assert.Equal(t, []string{
		"Window", "Group", "TextField", "SecureTextField", "Button", "StaticText",
	}, roles, "depth-first, children in reported order")
}

func TestFlattenIsDeterministic(t *testing.T) {
	s := loginSnapshot()
	assert.Equal(t, s.Flatten(), s.Flatten())
}

func TestFlattenPaths(t *testing.T) {
	flat := loginSnapshot().Flatten()
	require.NotEmpty(t, flat)
	assert.Equal(t, "Window", flat[0].Path)
	assert.Equal(t, "Window > Group > TextField[Email]", flat[2].Path)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 6, loginSnapshot().Count())
}

func TestMapRole(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AXButton", "Button"},
		{"AXStaticText", "StaticText"},
		{"Button", "Button"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapRole(tt.in))
	}
}

func TestSummarize(t *testing.T) {
	sm := Summarize(loginSnapshot())

	assert.Equal(t, 6, sm.TotalElements)
	assert.Equal(t, 3, sm.InteractiveElements, "two text fields and one button")
	assert.Equal(t, []string{"Login"}, sm.Buttons)
	require.Len(t, sm.TextFields, 2)
	assert.Equal(t, "Email", sm.TextFields[0].Label)
	assert.False(t, sm.TextFields[0].Secure)
	assert.True(t, sm.TextFields[1].Secure)
	assert.Equal(t, 1, sm.Roles["Button"])
}
