package models

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/sedai/internal/service"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/sedai/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// gridChromeHeight is the number of lines taken by the header and footer around the grid viewport
const gridChromeHeight = 5

func (m *GridModel) View() string {
	header := styles.ThemedHeader(m.width, fmt.Sprintf("Anime Sedai · %s", m.Theme().Name), m.Theme().Primary)

	var body string
	switch m.snapshot.State {
	case service.StateLoading:
		if m.loading != nil {
			return m.loading.View()
		}
	case service.StateIdle:
		body = styles.CenteredView(m.width, m.viewport.Height, styles.Info.Render("Press u to enter a Bangumi user ID"))
	case service.StateFailed:
		body = m.renderFailure()
	case service.StateReady:
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		m.renderStatusLine(),
		m.renderFooter(),
	)
}

// refreshContent redraws the grid into the viewport.  Called whenever the data, theme, size or highlight changes.
func (m *GridModel) refreshContent() {
	if m.snapshot.State != service.StateReady || m.snapshot.Result == nil {
		m.viewport.SetContent("")
		return
	}

	t := m.Theme()
	result := m.snapshot.Result
	width := max(m.width-2, 20)

	var sections []string
	if header := components.ProfileHeader(m.snapshot.Profile, result.SummaryLine(), t, width); header != "" {
		sections = append(sections, header)
	}
	sections = append(sections, components.Legend(t))
	sections = append(sections, components.Grid(result, components.GridOptions{
		Theme:     t,
		Width:     width,
		Highlight: m.searchInput.Value(),
	}))
	if result.Total > 0 {
		sections = append(sections, components.Chart(result.Chart, t, min(width, 100)))
	}

	m.viewport.SetContent(strings.Join(sections, "\n\n"))
}

func (m *GridModel) renderFailure() string {
	message := styles.Error.Render(m.snapshot.ErrMessage)
	hint := styles.Info.Render(fmt.Sprintf("User: %s • Press u to try another ID or r to retry", m.snapshot.Query.UserID))
	box := styles.ContentBox(min(m.width-4, 70), message+"\n\n"+hint, 1)
	return styles.CenteredView(m.width, m.viewport.Height, box)
}

func (m *GridModel) renderStatusLine() string {
	if m.searchMode || m.searchInput.Value() != "" {
		matches := components.CountMatches(m.snapshot.Result, m.searchInput.Value())
		prompt := styles.Title.Render("Search:") + " " + m.searchInput.View()
		return prompt + styles.Muted.Render(fmt.Sprintf("  %d matches", matches))
	}

	if m.notification != "" {
		if m.notificationErr {
			return styles.Error.Render(m.notification)
		}
		return styles.Success.Render(m.notification)
	}

	status := fmt.Sprintf("User %s • %d - %d • Export: profile %s, chart %s",
		m.query.UserID, m.query.StartYear, m.service.CurrentYear(), onOff(m.exportProfile), onOff(m.exportChart))
	return styles.StatusBar.Render(status)
}

func (m *GridModel) renderFooter() string {
	return components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: kb.KeyFor(kb.ContextGrid, kb.ActionEditUser), Desc: "User"},
		{Key: "[/]", Desc: "Start year"},
		{Key: "t/T", Desc: "Theme"},
		{Key: "p/c", Desc: "Export toggles"},
		{Key: kb.KeyFor(kb.ContextGrid, kb.ActionExport), Desc: "Export"},
		{Key: kb.KeyFor(kb.ContextGrid, kb.ActionAnalyze), Desc: "AI critic"},
		{Key: kb.KeyFor(kb.ContextGrid, kb.ActionEnableSearch), Desc: "Search"},
		{Key: kb.KeyFor(kb.ContextGlobal, kb.ActionToggleHelp), Desc: "Help"},
	})
}
