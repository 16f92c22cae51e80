// Package theme holds the fixed set of colour themes a grid can be rendered with.
package theme

import "github.com/PizzaHomicide/sedai/internal/domain"

const (
	// cellText is the dark text used on white and light cells
	cellText  = "#1F2937"
	cellBlank = "#FFFFFF"
)

// Theme is a named pair of highlight colours plus a page background
type Theme struct {
	Key  string
	Name string
	// Primary highlights year labels and 9-10 rated cells
	Primary string
	// Light highlights 6-8 rated cells
	Light      string
	Background string
}

// CellColors is the background/foreground pair for a single grid cell
type CellColors struct {
	Background string
	Foreground string
}

// DefaultKey is the theme used when nothing, or something unknown, is selected
const DefaultKey = "default"

var themes = []Theme{
	{Key: "default", Name: "卫宫红", Primary: "#FF2E36", Light: "#FFEBEB", Background: "#F0F0F0"},
	{Key: "miku", Name: "未来青", Primary: "#39C5BB", Light: "#E0F2F1", Background: "#E0F2F1"},
	{Key: "sakura", Name: "波奇粉", Primary: "#FFB7C5", Light: "#FFF0F5", Background: "#FFF0F5"},
	{Key: "eva", Name: "涅普紫", Primary: "#9C27B0", Light: "#F3E5F5", Background: "#F3E5F5"},
	{Key: "dark", Name: "死神黑", Primary: "#333333", Light: "#E5E5E5", Background: "#999999"},
}

// Keys returns every theme key in display order
func Keys() []string {
	keys := make([]string, len(themes))
	for i, t := range themes {
		keys[i] = t.Key
	}
	return keys
}

// All returns every theme in display order
func All() []Theme {
	return append([]Theme(nil), themes...)
}

// Lookup finds a theme by key
func Lookup(key string) (Theme, bool) {
	for _, t := range themes {
		if t.Key == key {
			return t, true
		}
	}
	return Theme{}, false
}

// Get returns the theme for key, falling back to the default theme
func Get(key string) Theme {
	if t, ok := Lookup(key); ok {
		return t
	}
	return themes[0]
}

// Next returns the theme after key, wrapping around.  Unknown keys start from the default.
func Next(key string) Theme {
	for i, t := range themes {
		if t.Key == key {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// CellColors returns the colours for a cell of the given rating tier
func (t Theme) CellColors(tier domain.RatingTier) CellColors {
	switch tier {
	case domain.TierStrong:
		return CellColors{Background: t.Primary, Foreground: cellBlank}
	case domain.TierLight:
		return CellColors{Background: t.Light, Foreground: cellText}
	default:
		return CellColors{Background: cellBlank, Foreground: cellText}
	}
}
