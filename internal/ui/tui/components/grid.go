package components

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/sedai/internal/aggregate"
	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/theme"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	yearLabelWidth   = 6
	defaultCellWidth = 14
)

// GridOptions controls how a grid is drawn
type GridOptions struct {
	Theme theme.Theme
	Width int
	// CellWidth is the visual width of one title cell, excluding its separator
	CellWidth int
	// Highlight fuzzy matches titles.  When set, matches are emphasised and everything else is dimmed.
	Highlight string
}

// Grid renders every year of result as a block of coloured title cells
func Grid(result *aggregate.Result, opts GridOptions) string {
	if result == nil {
		return ""
	}

	rows := make([]string, 0, len(result.Buckets))
	for _, bucket := range result.Buckets {
		rows = append(rows, GridRow(bucket, opts))
	}
	return strings.Join(rows, "\n")
}

// GridRow renders a single year.  Cells wrap onto as many lines as the width requires.
func GridRow(bucket domain.YearBucket, opts GridOptions) string {
	cellWidth := opts.CellWidth
	if cellWidth <= 0 {
		cellWidth = defaultCellWidth
	}
	perLine := max((opts.Width-yearLabelWidth-1)/(cellWidth+1), 1)

	var lines []string
	if len(bucket.Subjects) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Italic(true).
			Render(" " + aggregate.EmptyYearText)
		lines = append(lines, empty)
	}

	var line strings.Builder
	for i, s := range bucket.Subjects {
		line.WriteString(" ")
		line.WriteString(Cell(s, cellWidth, opts))
		if (i+1)%perLine == 0 || i == len(bucket.Subjects)-1 {
			lines = append(lines, line.String())
			line.Reset()
		}
	}

	label := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(opts.Theme.Primary)).
		Width(yearLabelWidth).
		Height(len(lines)).
		Align(lipgloss.Center).
		Render(bucket.Year)

	return lipgloss.JoinHorizontal(lipgloss.Top, label, strings.Join(lines, "\n"))
}

// Cell renders one title coloured by the user's rating
func Cell(s domain.RatedSubject, width int, opts GridOptions) string {
	colors := opts.Theme.CellColors(s.Tier())
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(colors.Background)).
		Foreground(lipgloss.Color(colors.Foreground))

	if opts.Highlight != "" {
		if MatchesTitle(opts.Highlight, s.Subject) {
			style = style.Bold(true).Underline(true)
		} else {
			style = style.Faint(true)
		}
	}

	return style.Render(util.PadToWidth(s.DisplayName(), width))
}

// MatchesTitle reports whether query fuzzy matches either name of a subject
func MatchesTitle(query string, s domain.Subject) bool {
	return fuzzy.MatchFold(query, s.Name) || fuzzy.MatchFold(query, s.NameCN)
}

// CountMatches counts the titles of result matching query
func CountMatches(result *aggregate.Result, query string) int {
	if result == nil || query == "" {
		return 0
	}
	count := 0
	for _, bucket := range result.Buckets {
		for _, s := range bucket.Subjects {
			if MatchesTitle(query, s.Subject) {
				count++
			}
		}
	}
	return count
}

// Legend explains the cell colours of a theme
func Legend(t theme.Theme) string {
	swatch := func(tier domain.RatingTier, label string) string {
		colors := t.CellColors(tier)
		return lipgloss.NewStyle().
			Background(lipgloss.Color(colors.Background)).
			Foreground(lipgloss.Color(colors.Foreground)).
			Padding(0, 1).
			Render(label)
	}
	return fmt.Sprintf("%s %s %s  %s",
		swatch(domain.TierStrong, "9-10"),
		swatch(domain.TierLight, "6-8"),
		swatch(domain.TierNone, "1-5 / 未评分"),
		lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Render(t.Name))
}
