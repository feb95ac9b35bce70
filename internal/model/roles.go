package model

import "strings"

// MapRole converts a raw macOS accessibility role (AXButton, AXStaticText)
// to the plain form used throughout the tool (Button, StaticText). Roles the
// accessibility layer reports without the AX prefix pass through unchanged.
func MapRole(axRole string) string {
	if axRole == "" {
		return "Unknown"
	}
	return strings.TrimPrefix(axRole, "AX")
}

// InteractiveRoles are roles that accept user input. Used by the screen-map
// summary to separate tappable targets from decoration.
var InteractiveRoles = map[string]bool{
	"Button":           true,
	"Link":             true,
	"TextField":        true,
	"SecureTextField":  true,
	"Cell":             true,
	"Switch":           true,
	"Slider":           true,
	"Stepper":          true,
	"SegmentedControl": true,
	"PopUpButton":      true,
	"ComboBox":         true,
	"CheckBox":         true,
	"RadioButton":      true,
	"MenuItem":         true,
}

// navigationRoles are structural roles that anchor screen navigation.
var navigationRoles = map[string]bool{
	"NavigationBar": true,
	"TabBar":        true,
	"Toolbar":       true,
	"MenuBar":       true,
}
