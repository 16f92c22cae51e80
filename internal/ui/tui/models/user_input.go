package models

import (
	"strings"

	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/PizzaHomicide/sedai/internal/service"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/sedai/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UserInputModel prompts for the Bangumi user whose grid should be loaded
type UserInputModel struct {
	width, height int
	input         textinput.Model
	startYear     int
	err           string
}

func NewUserInputModel(currentUserID string, startYear int) *UserInputModel {
	input := textinput.New()
	input.Placeholder = "Bangumi ID or username"
	input.Width = 30
	input.CharLimit = 64
	input.SetValue(currentUserID)
	input.CursorEnd()
	input.Focus()

	return &UserInputModel{
		input:     input,
		startYear: startYear,
	}
}

func (m *UserInputModel) ViewType() View {
	return ViewUserInput
}

func (m *UserInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *UserInputModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch kb.GetActionByKey(keyMsg, kb.ContextUserInput) {
		case kb.ActionSubmit:
			userID := strings.TrimSpace(m.input.Value())
			if userID == "" {
				m.err = "请输入用户 ID"
				return m, Handled("user_input:empty")
			}
			log.Info("User ID submitted", "user_id", userID)
			query := service.Query{UserID: userID, StartYear: m.startYear}
			return m, func() tea.Msg { return QuerySubmittedMsg{Query: query} }
		case kb.ActionBack:
			return m, func() tea.Msg { return CloseModalMsg{} }
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Value returns the text currently entered
func (m *UserInputModel) Value() string {
	return m.input.Value()
}

func (m *UserInputModel) View() string {
	header := styles.Header(m.width, "Load a Bangumi user")

	var b strings.Builder
	b.WriteString(styles.Title.Render("User ID: ") + " " + m.input.View())
	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Error.Render(m.err))
	}

	content := styles.ContentBox(min(m.width-4, 60), b.String(), 1)
	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "Enter", Desc: "Load grid"},
		{Key: "Esc", Desc: "Cancel"},
	})

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		styles.CenteredText(m.width, content),
		"",
		footer,
	)
}

func (m *UserInputModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
