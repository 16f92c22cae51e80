package keybindings

import tea "github.com/charmbracelet/bubbletea"

// Action represents a specific action that can be triggered by a key
type Action string

// Define all possible actions
const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"
	ActionBack       Action = "back" // General purpose "go back" or "cancel"

	// Navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionMoveTop    Action = "move_top"
	ActionMoveBottom Action = "move_bottom"

	// Grid actions
	ActionEditUser            Action = "edit_user"
	ActionRefreshGrid         Action = "refresh_grid"
	ActionStartYearEarlier    Action = "start_year_earlier"
	ActionStartYearLater      Action = "start_year_later"
	ActionCycleTheme          Action = "cycle_theme"
	ActionChooseTheme         Action = "choose_theme"
	ActionToggleExportProfile Action = "toggle_export_profile"
	ActionToggleExportChart   Action = "toggle_export_chart"
	ActionExport              Action = "export"
	ActionAnalyze             Action = "analyze"

	// User input actions
	ActionSubmit Action = "submit"

	// Menu actions
	ActionSelectMenuItem Action = "select_menu_item"

	// Search mode actions
	ActionEnableSearch   Action = "enable_search"
	ActionSearchComplete Action = "search_complete"
)

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal     ContextName = "global"
	ContextGrid       ContextName = "grid"
	ContextUserInput  ContextName = "user_input"
	ContextMenu       ContextName = "menu"
	ContextAnalysis   ContextName = "analysis"
	ContextSearchMode ContextName = "search_mode"
	ContextHelp       ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal:     globalBindings,
	ContextGrid:       gridBindings,
	ContextUserInput:  userInputBindings,
	ContextMenu:       menuBindings,
	ContextAnalysis:   analysisBindings,
	ContextSearchMode: searchModeBindings,
	ContextHelp:       helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

func bind(action Action, primary, secondary, help string) Binding {
	return Binding{Action: action, KeyMap: KeyMap{Primary: primary, Secondary: secondary, Help: help}}
}

// navigationBindings are shared by every scrollable view
var navigationBindings = []Binding{
	bind(ActionMoveUp, "up", "k", "Move cursor up"),
	bind(ActionMoveDown, "down", "j", "Move cursor down"),
	bind(ActionPageUp, "pgup", "", "Move up one page"),
	bind(ActionPageDown, "pgdown", "", "Move down one page"),
	bind(ActionMoveTop, "home", "g", "Move to the top"),
	bind(ActionMoveBottom, "end", "G", "Move to the bottom"),
}

// globalBindings are checked before any view sees a key, so they must never be printable
var globalBindings = []Binding{
	bind(ActionQuit, "ctrl+c", "", "Quit application"),
	bind(ActionToggleHelp, "ctrl+h", "", "Toggle help screen"),
	bind(ActionBack, "esc", "", "Go back/cancel current action"),
}

var helpBindings = withNavigation()

var analysisBindings = withNavigation()

var gridBindings = withNavigation(
	bind(ActionEditUser, "u", "", "Enter a Bangumi user ID"),
	bind(ActionRefreshGrid, "r", "", "Reload the grid"),
	bind(ActionStartYearEarlier, "[", "", "Start the grid one year earlier"),
	bind(ActionStartYearLater, "]", "", "Start the grid one year later"),
	bind(ActionCycleTheme, "t", "", "Switch to the next theme"),
	bind(ActionChooseTheme, "T", "", "Choose a theme"),
	bind(ActionToggleExportProfile, "p", "", "Toggle the profile block in exports"),
	bind(ActionToggleExportChart, "c", "", "Toggle the chart in exports"),
	bind(ActionExport, "e", "", "Export the grid as a PNG image"),
	bind(ActionAnalyze, "a", "", "Ask the AI critic about your taste"),
	bind(ActionEnableSearch, "/", "ctrl+f", "Highlight titles"),
)

// userInputBindings must not claim printable keys, they belong to the text field
var userInputBindings = []Binding{
	bind(ActionSubmit, "enter", "", "Load the grid for the entered user"),
	bind(ActionBack, "esc", "", "Cancel"),
}

var menuBindings = withNavigation(
	bind(ActionSelectMenuItem, "enter", "", "Select item"),
)

var searchModeBindings = []Binding{
	bind(ActionBack, "esc", "ctrl+f", "Exit search mode and clear the highlight"),
	bind(ActionSearchComplete, "enter", "", "Keep the highlight and return control to the grid"),
}

func findBinding(action Action, bindings []Binding) (Binding, bool) {
	for _, binding := range bindings {
		if binding.Action == action {
			return binding, true
		}
	}
	return Binding{}, false
}

// GetActionKey returns the primary key for an action
func GetActionKey(action Action, bindings []Binding) string {
	binding, _ := findBinding(action, bindings)
	return binding.KeyMap.Primary
}

// GetActionSecondaryKey returns the secondary key for an action if it exists
func GetActionSecondaryKey(action Action, bindings []Binding) string {
	binding, _ := findBinding(action, bindings)
	return binding.KeyMap.Secondary
}

// KeyFor returns the primary key bound to action in a context, for footers and hints
func KeyFor(name ContextName, action Action) string {
	return GetActionKey(action, ContextBindings[name])
}

// GetActionByKey returns the action bound to a key in a context, or an empty Action
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	key := keyMsg.String()
	for _, binding := range ContextBindings[name] {
		if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
			return binding.Action
		}
	}
	return ""
}

// FormatKeyHelp formats a key binding for display in help text
func FormatKeyHelp(binding Binding) string {
	keys := binding.KeyMap.Primary
	if binding.KeyMap.Secondary != "" {
		keys += "/" + binding.KeyMap.Secondary
	}
	return keys + ": " + binding.KeyMap.Help
}

func withNavigation(bindings ...Binding) []Binding {
	return append(append([]Binding{}, navigationBindings...), bindings...)
}
