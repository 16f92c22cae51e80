package models

import (
	"strings"

	kb "github.com/PizzaHomicide/sedai/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var helpHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

// helpTopic is the help shown for one view: what it is for and the keys it adds on top of the global ones
type helpTopic struct {
	title    string
	about    string
	contexts []kb.ContextName
	extra    func() string
}

var helpTopics = map[View]helpTopic{
	ViewGrid: {
		title: "Anime Grid",
		about: "The grid shows every anime a Bangumi user has watched, grouped by the year it aired.\n\n" +
			"Enter any Bangumi user ID to load their grid, move the start year to zoom in on an era, " +
			"and export the result as an image to share.",
		contexts: []kb.ContextName{kb.ContextGrid, kb.ContextSearchMode},
		extra:    gridLegendHelp,
	},
	ViewAnalysis: {
		title: "Taste Analysis",
		about: "The taste analysis sends the titles of the grid to an AI critic and shows what it makes of them.\n\n" +
			"It needs an API key in the analysis section of the config file.",
		contexts: []kb.ContextName{kb.ContextAnalysis},
	},
	ViewMenu: {
		title:    "Menu",
		about:    "Pick an entry and press enter.",
		contexts: []kb.ContextName{kb.ContextMenu},
	},
	ViewUserInput: {
		title:    "Choose User",
		about:    "Type a numeric Bangumi user ID or a username.",
		contexts: []kb.ContextName{kb.ContextUserInput},
	},
}

var contextTitles = map[kb.ContextName]string{
	kb.ContextGrid:       "Grid",
	kb.ContextSearchMode: "While searching",
	kb.ContextAnalysis:   "Analysis",
	kb.ContextMenu:       "Menu",
	kb.ContextUserInput:  "User ID prompt",
}

// HelpModel shows the keys and a short explanation for the view it was opened from
type HelpModel struct {
	width, height int
	context       View
	viewport      viewport.Model
}

func NewHelpModel(context View) *HelpModel {
	return &HelpModel{
		context:  context,
		viewport: viewport.New(0, 0),
	}
}

func (m *HelpModel) ViewType() View {
	return ViewHelp
}

func (m *HelpModel) Init() tea.Cmd {
	if m.width > 0 && m.height > 0 {
		m.updateContent()
	}
	return nil
}

func (m *HelpModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextHelp) {
		case kb.ActionMoveUp, kb.ActionMoveDown, kb.ActionPageUp, kb.ActionPageDown:
			m.viewport, cmd = m.viewport.Update(msg)
		case kb.ActionMoveTop:
			m.viewport.GotoTop()
		case kb.ActionMoveBottom:
			m.viewport.GotoBottom()
		}
	}
	return m, cmd
}

func (m *HelpModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 1)
	m.viewport.Height = max(height-10, 1)
	m.updateContent()
}

func (m *HelpModel) updateContent() {
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

func (m *HelpModel) View() string {
	footer := styles.CenteredText(m.width, styles.Info.Render("↑/↓: Scroll • PgUp/PgDn: Page • Home/End: Top/bottom • Esc: Return"))
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Header(m.width, "Help: "+m.topic().title),
		"",
		styles.ContentBox(m.width-2, m.viewport.View(), 1),
		"",
		footer,
	)
}

func (m *HelpModel) topic() helpTopic {
	if topic, ok := helpTopics[m.context]; ok {
		return topic
	}
	return helpTopic{
		title: "General",
		about: "Sedai draws the anime generation grid of a Bangumi user in the terminal.",
	}
}

func (m *HelpModel) content() string {
	topic := m.topic()

	var b strings.Builder
	b.WriteString(helpHeading.Render(topic.title) + "\n\n" + topic.about + "\n\n")
	b.WriteString(helpHeading.Render("Keybindings") + "\n\n")

	global := kb.ContextBindings[kb.ContextGlobal]
	b.WriteString(bindingTable("Everywhere", global, nil))

	skip := make(map[kb.Action]bool, len(global))
	for _, binding := range global {
		skip[binding.Action] = true
	}
	for _, name := range topic.contexts {
		b.WriteString("\n")
		b.WriteString(bindingTable(contextTitles[name], kb.ContextBindings[name], skip))
	}

	if topic.extra != nil {
		b.WriteString("\n" + topic.extra())
	}
	return b.String()
}

// bindingTable lists bindings with their descriptions aligned in one column
func bindingTable(title string, bindings []kb.Binding, skip map[kb.Action]bool) string {
	type row struct{ keys, help string }
	var rows []row
	keyWidth := 0
	for _, binding := range bindings {
		if skip[binding.Action] {
			continue
		}
		keys := binding.KeyMap.Primary
		if binding.KeyMap.Secondary != "" {
			keys += " or " + binding.KeyMap.Secondary
		}
		keyWidth = max(keyWidth, runewidth.StringWidth(keys))
		rows = append(rows, row{keys, binding.KeyMap.Help})
	}
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title+":") + "\n\n")
	for _, r := range rows {
		b.WriteString("• " + lipgloss.NewStyle().Bold(true).Render(runewidth.FillRight(r.keys, keyWidth)) + " : " + r.help + "\n")
	}
	return b.String()
}

func gridLegendHelp() string {
	return helpHeading.Render("Reading the grid") + "\n\n" +
		"Each row is a year, each cell an anime that first aired that year.\n" +
		"Cells are coloured by the score given to the title on Bangumi:\n\n" +
		"• 9-10       : Theme colour\n" +
		"• 6-8        : Light theme colour\n" +
		"• 1-5 / none : White\n\n" +
		"Only titles marked as watched are shown, and only the first 300 of them.\n" +
		"Titles without an air date are left out.\n\n" +
		helpHeading.Render("Exporting") + "\n\n" +
		"Exports are PNG images written to the configured export directory.\n" +
		"The profile block and the chart can each be left out of the image.  Avatars are never exported.\n"
}
