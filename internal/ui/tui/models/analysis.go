package models

import (
	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/PizzaHomicide/sedai/internal/service"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/sedai/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AnalysisModel shows the AI critic's take on a grid, rendered as markdown
type AnalysisModel struct {
	width, height int
	queryID       service.QueryID
	userID        string
	text          string
	loading       *LoadingModel
	viewport      viewport.Model
}

func NewAnalysisModel(queryID service.QueryID, userID string) *AnalysisModel {
	return &AnalysisModel{
		queryID:  queryID,
		userID:   userID,
		loading:  NewLoadingModel("AI 正在分析你的口味...").WithTitle("Taste Analysis"),
		viewport: viewport.New(0, 0),
	}
}

func (m *AnalysisModel) ViewType() View {
	return ViewAnalysis
}

func (m *AnalysisModel) Init() tea.Cmd {
	return m.loading.Init()
}

func (m *AnalysisModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case AnalysisCompletedMsg:
		if msg.ID != m.queryID {
			log.Debug("Ignoring analysis of another query", "query_id", msg.ID, "expected", m.queryID)
			return m, nil
		}
		m.SetText(msg.Text)
		return m, nil

	case spinner.TickMsg:
		if m.loading != nil {
			loading, cmd := m.loading.Update(msg)
			m.loading = loading.(*LoadingModel)
			return m, cmd
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextAnalysis) {
		case kb.ActionMoveUp, kb.ActionMoveDown, kb.ActionPageUp, kb.ActionPageDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case kb.ActionMoveTop:
			m.viewport.GotoTop()
			return m, nil
		case kb.ActionMoveBottom:
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	return m, nil
}

// SetText replaces the loading indicator with the analysis
func (m *AnalysisModel) SetText(text string) {
	m.text = text
	m.loading = nil
	m.renderContent()
}

// Loaded reports whether the analysis has arrived
func (m *AnalysisModel) Loaded() bool {
	return m.loading == nil
}

func (m *AnalysisModel) renderContent() {
	if m.text == "" {
		return
	}
	m.viewport.SetContent(renderMarkdown(m.text, m.viewport.Width))
	m.viewport.GotoTop()
}

// renderMarkdown renders md for the terminal, falling back to the raw text
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		log.Warn("Failed to create markdown renderer", "error", err)
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		log.Warn("Failed to render markdown", "error", err)
		return md
	}
	return out
}

func (m *AnalysisModel) View() string {
	if m.loading != nil {
		return m.loading.View()
	}

	header := styles.Header(m.width, "Taste Analysis: "+m.userID)
	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "↑/↓", Desc: "Scroll"},
		{Key: "Esc", Desc: "Back to grid"},
	})

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		styles.ContentBox(m.width-2, m.viewport.View(), 1),
		"",
		footer,
	)
}

func (m *AnalysisModel) Resize(width, height int) {
	m.width = width
	m.height = height

	m.viewport.Width = max(width-6, 1)
	m.viewport.Height = max(height-10, 1)
	if m.loading != nil {
		m.loading.Resize(width, height)
	}
	m.renderContent()
}
