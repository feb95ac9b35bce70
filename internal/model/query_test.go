package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axsim/sim-cli/internal/geometry"
)

// loginSnapshot is a small fixture resembling a login screen.
func loginSnapshot() Snapshot {
	return Snapshot{
		Target:     "TEST-UDID",
		CapturedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Geometry: geometry.ScreenGeometry{
			Scale:       3,
			PixelSize:   geometry.Size{Width: 1206, Height: 2622},
			PointSize:   geometry.Size{Width: 402, Height: 874},
			WindowScale: 1.0,
		},
		Root: ElementNode{
			Role:  "Window",
			Frame: geometry.Rect{X: 0, Y: 0, Width: 402, Height: 874},
			Children: []ElementNode{
				{
					Role:  "Group",
					Frame: geometry.Rect{X: 0, Y: 0, Width: 402, Height: 874},
					Children: []ElementNode{
						{
							Role:       "TextField",
							Label:      "Email",
							Identifier: "login.email",
							Frame:      geometry.Rect{X: 40, Y: 300, Width: 322, Height: 44},
						},
						{
							Role:       "SecureTextField",
							Label:      "Password",
							Identifier: "login.password",
							Frame:      geometry.Rect{X: 40, Y: 352, Width: 322, Height: 44},
						},
						{
							Role:       "Button",
							Label:      "Login",
							Identifier: "login.submit",
							Frame:      geometry.Rect{X: 135, Y: 400, Width: 120, Height: 44},
						},
						{
							Role:  "StaticText",
							Value: "Forgot your login?",
							Frame: geometry.Rect{X: 100, Y: 460, Width: 202, Height: 20},
						},
					},
				},
			},
		},
	}
}

func TestQueryRequiresPredicate(t *testing.T) {
	_, err := Query(loginSnapshot(), Predicates{})
	assert.Error(t, err)
}

func TestQueryTextExact(t *testing.T) {
	matches, err := Query(loginSnapshot(), Predicates{TextExact: "Login"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Button", matches[0].Element.Role)
	assert.Equal(t, geometry.Point{X: 195, Y: 422}, matches[0].Center)
}

func TestQueryTextContainsIsCaseInsensitive(t *testing.T) {
	matches, err := Query(loginSnapshot(), Predicates{TextContains: "login"})
	require.NoError(t, err)
	// Button label "Login" and static text "Forgot your login?".
	require.Len(t, matches, 2)
	assert.Equal(t, "Button", matches[0].Element.Role, "traversal order puts the button first")
	assert.Equal(t, "StaticText", matches[1].Element.Role)
}

func TestQueryPredicatesCombineWithAND(t *testing.T) {
	matches, err := Query(loginSnapshot(), Predicates{TextContains: "login", Role: "StaticText"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Forgot your login?", matches[0].Element.Value)
}

func TestQueryRoleAcceptsAXPrefix(t *testing.T) {
	withPrefix, err := Query(loginSnapshot(), Predicates{Role: "AXButton"})
	require.NoError(t, err)
	plain, err := Query(loginSnapshot(), Predicates{Role: "Button"})
	require.NoError(t, err)
	assert.Equal(t, plain, withPrefix)
}

func TestQueryIdentifier(t *testing.T) {
	matches, err := Query(loginSnapshot(), Predicates{Identifier: "login.password"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Password", matches[0].Element.Label)
}

func TestQueryZeroMatchesIsNotAnError(t *testing.T) {
	matches, err := Query(loginSnapshot(), Predicates{TextExact: "Sign Up"})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestQueryIsReproducible(t *testing.T) {
	s := loginSnapshot()
	p := Predicates{TextContains: "o"}
	first, err := Query(s, p)
	require.NoError(t, err)
	second, err := Query(s, p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelectIndex(t *testing.T) {
	matches, err := Query(loginSnapshot(), Predicates{TextContains: "login"})
	require.NoError(t, err)

	first, err := SelectIndex(matches, 0)
	require.NoError(t, err)
	assert.Equal(t, "Button", first[0].Element.Role)

	second, err := SelectIndex(matches, 1)
	require.NoError(t, err)
	assert.Equal(t, "StaticText", second[0].Element.Role)

	_, err = SelectIndex(matches, 2)
	assert.Error(t, err)
	_, err = SelectIndex(matches, -1)
	assert.Error(t, err)
}

func TestQueryPathIncludesAncestry(t *testing.T) {
	matches, err := Query(loginSnapshot(), Predicates{TextExact: "Login"})
	require.NoError(t, err)
	assert.Equal(t, "Window > Group > Button[Login]", matches[0].Path)
}
