package components

import (
	"strings"

	"github.com/PizzaHomicide/sedai/internal/ui/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one key hint in a footer bar
type KeyBinding struct {
	Key  string
	Desc string
}

var keyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7D56F4")).
	Bold(true)

const keySeparator = " • "

// KeyBindingsBar renders a centred footer of key hints.  Hints that would not fit in width are dropped from the end,
// so the most important ones should come first.
func KeyBindingsBar(width int, bindings []KeyBinding) string {
	var b strings.Builder
	for i, binding := range bindings {
		part := keyStyle.Render(binding.Key) + ": " + binding.Desc
		if i > 0 {
			part = keySeparator + part
		}
		if width > 0 && lipgloss.Width(b.String()+part) > width {
			break
		}
		b.WriteString(part)
	}
	return styles.CenteredText(width, styles.Info.Render(b.String()))
}
