package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// slowAfter is how long a wait has to last before the elapsed time is shown
const slowAfter = 3 * time.Second

// LoadingModel is the spinner box shown while a query or an analysis is running
type LoadingModel struct {
	width, height int
	title         string
	message       string
	detail        string
	accent        lipgloss.Color
	spinner       spinner.Model
	startTime     time.Time
	now           func() time.Time
}

func NewLoadingModel(message string) *LoadingModel {
	m := &LoadingModel{
		message: message,
		accent:  lipgloss.Color("#7D56F4"),
		now:     time.Now,
	}
	m.spinner = spinner.New(spinner.WithSpinner(spinner.MiniDot))
	m.startTime = m.now()
	return m
}

func (m *LoadingModel) WithTitle(title string) *LoadingModel {
	m.title = title
	return m
}

// WithDetail adds a muted second line, e.g. which user is being loaded
func (m *LoadingModel) WithDetail(detail string) *LoadingModel {
	m.detail = detail
	return m
}

// WithAccent colours the spinner and border, normally with the active theme's primary colour
func (m *LoadingModel) WithAccent(hex string) *LoadingModel {
	if hex != "" {
		m.accent = lipgloss.Color(hex)
	}
	return m
}

func (m *LoadingModel) ViewType() View {
	return ViewLoading
}

func (m *LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *LoadingModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}

	log.Trace("Loading model ignored message", "message", msg)
	return m, nil
}

func (m *LoadingModel) View() string {
	boxWidth := max(min(m.width-8, 60), 30)
	line := lipgloss.NewStyle().Width(boxWidth - 6).Align(lipgloss.Center)

	var b strings.Builder
	spin := lipgloss.NewStyle().Foreground(m.accent).Bold(true).Render(m.spinner.View())
	b.WriteString(line.Render(spin + " " + lipgloss.NewStyle().Bold(true).Render(m.message)))

	if m.detail != "" {
		b.WriteString("\n\n")
		b.WriteString(line.Inherit(styles.Muted).Render(m.detail))
	}
	if elapsed := m.Elapsed(); elapsed >= slowAfter {
		b.WriteString("\n")
		b.WriteString(line.Inherit(styles.Muted).Render(fmt.Sprintf("已等待 %d 秒", int(elapsed.Seconds()))))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.accent).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())

	if m.title != "" {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(m.accent).
			Width(boxWidth).
			Align(lipgloss.Center).
			Render(m.title)
		box = lipgloss.JoinVertical(lipgloss.Center, header, box)
	}

	return styles.CenteredView(m.width, m.height, box)
}

func (m *LoadingModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// Elapsed is the time since loading started
func (m *LoadingModel) Elapsed() time.Duration {
	return m.now().Sub(m.startTime)
}
