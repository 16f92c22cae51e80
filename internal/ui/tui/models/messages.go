package models

import (
	"github.com/PizzaHomicide/sedai/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// HandledMsg signals that a key press was consumed by a view and needs no further processing
type HandledMsg struct {
	Source string
}

// Handled returns a command reporting that source consumed the message
func Handled(source string) tea.Cmd {
	return func() tea.Msg {
		return HandledMsg{Source: source}
	}
}

// QuerySubmittedMsg asks the app to load the grid for a query
type QuerySubmittedMsg struct {
	Query service.Query
}

// GridLoadedMsg is sent when a query finishes, successfully or not.  Messages for superseded queries are dropped.
type GridLoadedMsg struct {
	ID service.QueryID
}

// ThemeSelectedMsg is sent when a theme has been picked from the theme menu
type ThemeSelectedMsg struct {
	Key string
}

// ExportRequestedMsg asks the app to export the current grid
type ExportRequestedMsg struct{}

// ExportCompletedMsg is sent when an image was written
type ExportCompletedMsg struct {
	Path string
}

// ExportFailedMsg is sent when an image could not be produced
type ExportFailedMsg struct {
	Error error
}

// AnalysisRequestedMsg asks the app to open the taste analysis
type AnalysisRequestedMsg struct{}

// AnalysisCompletedMsg carries the analysis text for a query
type AnalysisCompletedMsg struct {
	ID   service.QueryID
	Text string
}

// CloseModalMsg asks the app to return to the grid
type CloseModalMsg struct{}

// ClearNotificationMsg hides a notification, unless a newer one has replaced it
type ClearNotificationMsg struct {
	Seq int
}

// OpenUserInputMsg asks the app to show the user ID prompt
type OpenUserInputMsg struct{}

// OpenThemeMenuMsg asks the app to show the theme picker
type OpenThemeMenuMsg struct{}
