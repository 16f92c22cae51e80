package models

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewGrid      View = "grid"
	ViewUserInput View = "user-input"
	ViewLoading   View = "loading"
	ViewHelp      View = "help"
	ViewMenu      View = "menu"
	ViewAnalysis  View = "analysis"
)
