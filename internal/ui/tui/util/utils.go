package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateString cuts a string to fit within maxWidth visual width
func TruncateString(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", max(maxWidth, 0))
	}

	width := 0
	for i, r := range s {
		charWidth := runewidth.RuneWidth(r)
		// Check if adding this rune would exceed maxWidth
		if width+charWidth > maxWidth-3 { // Reserve space for "..."
			return s[:i] + "..."
		}
		width += charWidth
	}
	return s
}

// PadToWidth right pads s with spaces to exactly width visual columns, truncating first if it is too wide
func PadToWidth(s string, width int) string {
	s = TruncateString(s, width)
	return s + strings.Repeat(" ", max(width-runewidth.StringWidth(s), 0))
}
