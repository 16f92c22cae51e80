package components

import (
	"fmt"

	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// ProfileHeader renders the user's name and id alongside the summary line
func ProfileHeader(profile *domain.UserProfile, summary string, t theme.Theme, width int) string {
	if profile == nil {
		return ""
	}

	name := lipgloss.NewStyle().Bold(true).Render(profile.DisplayName())
	id := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render(fmt.Sprintf("ID: %d", profile.ID))
	left := lipgloss.JoinVertical(lipgloss.Left, name, id)

	right := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary)).Render(summary)
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-4, 2)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Primary)).
		Padding(0, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, left, lipgloss.NewStyle().Width(gap).Render(""), right))
}
