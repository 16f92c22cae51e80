package components

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// ChartTitle heads the watch count chart
const ChartTitle = "观看历史统计"

// Chart renders the per-year watch counts as horizontal bars scaled to width
func Chart(points []domain.ChartPoint, t theme.Theme, width int) string {
	maxCount := 0
	for _, p := range points {
		maxCount = max(maxCount, p.Count)
	}

	countWidth := len(fmt.Sprint(maxCount))
	barSpace := max(width-yearLabelWidth-countWidth-2, 1)
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(ChartTitle))
	b.WriteString("\n\n")
	for _, p := range points {
		length := 0
		if maxCount > 0 {
			length = p.Count * barSpace / maxCount
		}
		if p.Count > 0 && length == 0 {
			length = 1
		}
		fmt.Fprintf(&b, "%-*s %s %*d\n", yearLabelWidth-1, p.Year, barStyle.Render(strings.Repeat("█", length)), countWidth, p.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}
