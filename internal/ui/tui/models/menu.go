package models

import (
	"strings"

	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/sedai/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuItem is one selectable row of a menu
type MenuItem struct {
	Text string
	// Swatches are hex colours drawn as small blocks before the text
	Swatches []string
	// Active marks the item matching the current setting
	Active  bool
	Command tea.Cmd
}

// MenuModel is a modal list of choices.  Navigation wraps around at both ends.
type MenuModel struct {
	Title         string
	Items         []MenuItem
	Cursor        int
	width, height int
}

func NewMenuModel(title string, items []MenuItem) *MenuModel {
	return &MenuModel{Title: title, Items: items}
}

// WithCursor preselects an item
func (m *MenuModel) WithCursor(i int) *MenuModel {
	if i >= 0 && i < len(m.Items) {
		m.Cursor = i
	}
	return m
}

func (m *MenuModel) ViewType() View {
	return ViewMenu
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kb.GetActionByKey(keyMsg, kb.ContextMenu) {
	case kb.ActionMoveUp:
		m.Cursor = (m.Cursor - 1 + len(m.Items)) % len(m.Items)
	case kb.ActionMoveDown:
		m.Cursor = (m.Cursor + 1) % len(m.Items)
	case kb.ActionMoveTop:
		m.Cursor = 0
	case kb.ActionMoveBottom:
		m.Cursor = len(m.Items) - 1
	case kb.ActionSelectMenuItem:
		selected := m.Items[m.Cursor]
		log.Info("Menu item selected", "title", m.Title, "item", selected.Text)
		return m, selected.Command
	}
	return m, nil
}

func (m *MenuModel) View() string {
	boxWidth := max(min(m.width-4, 50), 24)

	var rows []string
	for i, item := range m.Items {
		rows = append(rows, m.renderItem(item, i == m.Cursor, boxWidth-4))
	}
	if len(rows) == 0 {
		rows = append(rows, styles.Muted.Render("(empty)"))
	}

	box := lipgloss.JoinVertical(lipgloss.Center,
		styles.Header(boxWidth, m.Title),
		styles.ContentBox(boxWidth-2, strings.Join(rows, "\n"), 1),
		components.KeyBindingsBar(boxWidth, []components.KeyBinding{
			{Key: "↑/↓", Desc: "移动"},
			{Key: "Enter", Desc: "选择"},
			{Key: "Esc", Desc: "取消"},
		}),
	)
	return styles.CenteredView(m.width, m.height, box)
}

func (m *MenuModel) renderItem(item MenuItem, selected bool, width int) string {
	var swatch strings.Builder
	for _, hex := range item.Swatches {
		swatch.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██"))
	}
	if swatch.Len() > 0 {
		swatch.WriteString(" ")
	}

	text := item.Text
	if item.Active {
		text += " ✓"
	}

	pointer := "  "
	style := lipgloss.NewStyle().Padding(0, 1)
	if selected {
		pointer = "> "
		style = style.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7D56F4"))
	}
	return pointer + swatch.String() + style.Width(max(width-lipgloss.Width(swatch.String())-2, 1)).Render(text)
}

func (m *MenuModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
