package models

import tea "github.com/charmbracelet/bubbletea"

// Model is implemented by every view the app can show.  Unlike tea.Model, Update returns the concrete view type so
// the app can keep typed references to its children.
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
	ViewType() View
	Resize(width, height int)
}
