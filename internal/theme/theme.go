// Package theme defines the light and dark color palettes.
package theme

import "strings"

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Card       string `json:"card"`
	Text       string `json:"text"`
	Subtext    string `json:"subtext"`
	Border     string `json:"border"`
	Success    string `json:"success"`
	Warning    string `json:"warning"`
	Error      string `json:"error"`
	Gradient   string `json:"gradient"`
}

var palettes = map[Mode]Palette{
	Light: {
		Primary:    "#3b82f6",
		Secondary:  "#10b981",
		Accent:     "#8b5cf6",
		Background: "#ffffff",
		Card:       "#f9fafb",
		Text:       "#1f2937",
		Subtext:    "#4b5563",
		Border:     "#e5e7eb",
		Success:    "#10b981",
		Warning:    "#f59e0b",
		Error:      "#ef4444",
		Gradient:   "linear-gradient(135deg, #3b82f6 0%, #8b5cf6 100%)",
	},
	Dark: {
		Primary:    "#818cf8",
		Secondary:  "#34d399",
		Accent:     "#c4b5fd",
		Background: "#121212",
		Card:       "#1e1e1e",
		Text:       "#f3f4f6",
		Subtext:    "#9ca3af",
		Border:     "#2d2d2d",
		Success:    "#34d399",
		Warning:    "#fbbf24",
		Error:      "#f87171",
		Gradient:   "linear-gradient(135deg, #818cf8 0%, #c4b5fd 100%)",
	},
}

// For returns the palette for a mode; anything but Dark is Light.
func For(m Mode) Palette {
	if m == Dark {
		return palettes[Dark]
	}
	return palettes[Light]
}

// Resolve picks the mode: a stored "light" or "dark" preference wins, otherwise the
// system preference.
func Resolve(stored string, prefersDark bool) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(stored))) {
	case Dark:
		return Dark
	case Light:
		return Light
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// Toggle returns the other mode.
func Toggle(m Mode) Mode {
	if m == Dark {
		return Light
	}
	return Dark
}
