package model

// TextFieldInfo summarizes one text input on screen.
type TextFieldInfo struct {
	Label    string `yaml:"label"               json:"label"`
	Secure   bool   `yaml:"secure,omitempty"    json:"secure,omitempty"`
	HasValue bool   `yaml:"has_value,omitempty" json:"has_value,omitempty"`
}

// ScreenMap is a token-efficient summary of a snapshot: what an agent needs
// to decide the next action without parsing the full tree.
type ScreenMap struct {
	TotalElements       int             `yaml:"total_elements"            json:"total_elements"`
	InteractiveElements int             `yaml:"interactive_elements"      json:"interactive_elements"`
	Buttons             []string        `yaml:"buttons,omitempty"         json:"buttons,omitempty"`
	ButtonsTruncated    int             `yaml:"buttons_truncated,omitempty" json:"buttons_truncated,omitempty"`
	TextFields          []TextFieldInfo `yaml:"text_fields,omitempty"     json:"text_fields,omitempty"`
	NavTitle            string          `yaml:"nav_title,omitempty"       json:"nav_title,omitempty"`
	HasTabBar           bool            `yaml:"has_tab_bar,omitempty"     json:"has_tab_bar,omitempty"`
	Roles               map[string]int  `yaml:"roles,omitempty"           json:"roles,omitempty"`
}

// maxMappedButtons caps the button list in a screen map. Busy screens can
// expose dozens of buttons; the cap keeps summaries cheap for agents.
const maxMappedButtons = 10

// Summarize builds a ScreenMap from a snapshot. Pure function of the
// snapshot value.
func Summarize(s Snapshot) ScreenMap {
	sm := ScreenMap{Roles: make(map[string]int)}

	for _, el := range s.Flatten() {
		sm.TotalElements++
		sm.Roles[el.Role]++

		if InteractiveRoles[el.Role] {
			sm.InteractiveElements++
		}

		label := el.Label
		if label == "" {
			label = el.Description
		}

		switch {
		case el.Role == "Button" && label != "":
			sm.Buttons = append(sm.Buttons, label)
		case el.Role == "TextField" || el.Role == "SecureTextField":
			name := label
			if name == "" {
				name = el.Identifier
			}
			if name == "" {
				name = "Unnamed"
			}
			sm.TextFields = append(sm.TextFields, TextFieldInfo{
				Label:    name,
				Secure:   el.Role == "SecureTextField",
				HasValue: el.Value != "",
			})
		case navigationRoles[el.Role]:
			if el.Role == "NavigationBar" && label != "" {
				sm.NavTitle = label
			}
			if el.Role == "TabBar" {
				sm.HasTabBar = true
			}
		}
	}

	if len(sm.Buttons) > maxMappedButtons {
		sm.ButtonsTruncated = len(sm.Buttons)
		sm.Buttons = sm.Buttons[:maxMappedButtons]
	}
	return sm
}
