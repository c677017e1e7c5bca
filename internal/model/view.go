package model

import "strings"

// View is the tab currently selected in the UI.
type View string

const (
	ViewTop    View = "top"
	ViewBrowse View = "browse"
	ViewSubmit View = "submit"
	ViewAdmin  View = "admin"
)

var Views = []View{ViewTop, ViewBrowse, ViewSubmit, ViewAdmin}

func (v View) Label() string {
	switch v {
	case ViewTop:
		return "Top this week"
	case ViewBrowse:
		return "Browse"
	case ViewSubmit:
		return "Submit"
	case ViewAdmin:
		return "Admin"
	}
	return string(v)
}

// ParseView accepts a view name in any case.
func ParseView(raw string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Views {
		if v == known {
			return v, true
		}
	}
	return "", false
}
