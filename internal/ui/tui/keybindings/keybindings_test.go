package keybindings

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNoDuplicateKeyBindings(t *testing.T) {
	// Check each context individually
	for contextName, bindings := range ContextBindings {
		t.Run(fmt.Sprintf("Context_%s", contextName), func(t *testing.T) {
			keyToAction := make(map[string]Action)

			for _, binding := range bindings {
				// Check primary key
				if existingAction, exists := keyToAction[binding.KeyMap.Primary]; exists {
					t.Errorf("Duplicate key binding '%s' in context '%s': "+
						"first assigned to action '%s', then to '%s'",
						binding.KeyMap.Primary, contextName, existingAction, binding.Action)
				} else {
					keyToAction[binding.KeyMap.Primary] = binding.Action
				}

				// Check secondary key if it exists
				if binding.KeyMap.Secondary != "" {
					if existingAction, exists := keyToAction[binding.KeyMap.Secondary]; exists {
						t.Errorf("Duplicate key binding '%s' in context '%s': "+
							"first assigned to action '%s', then to '%s'",
							binding.KeyMap.Secondary, contextName, existingAction, binding.Action)
					} else {
						keyToAction[binding.KeyMap.Secondary] = binding.Action
					}
				}
			}
		})
	}
}

func TestGetActionByKey(t *testing.T) {
	tests := []struct {
		key     tea.KeyMsg
		context ContextName
		want    Action
	}{
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")}, context: ContextGrid, want: ActionCycleTheme},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("T")}, context: ContextGrid, want: ActionChooseTheme},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, context: ContextGrid, want: ActionMoveDown},
		{key: tea.KeyMsg{Type: tea.KeyCtrlF}, context: ContextGrid, want: ActionEnableSearch},
		{key: tea.KeyMsg{Type: tea.KeyEnter}, context: ContextUserInput, want: ActionSubmit},
		{key: tea.KeyMsg{Type: tea.KeyEnter}, context: ContextMenu, want: ActionSelectMenuItem},
		{key: tea.KeyMsg{Type: tea.KeyEsc}, context: ContextSearchMode, want: ActionBack},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")}, context: ContextUserInput, want: ""},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, context: "missing", want: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.context)+"_"+tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, GetActionByKey(tt.key, tt.context))
		})
	}
}

func TestFormatKeyHelp(t *testing.T) {
	assert.Equal(t, "/ or ctrl+f", GetActionKey(ActionEnableSearch, gridBindings)+" or "+GetActionSecondaryKey(ActionEnableSearch, gridBindings))
	assert.Equal(t, "e: Export the grid as a PNG image", FormatKeyHelp(Binding{Action: ActionExport, KeyMap: KeyMap{Primary: "e", Help: "Export the grid as a PNG image"}}))
	assert.Equal(t, "up/k: Move cursor up", FormatKeyHelp(navigationBindings[0]))
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "e", KeyFor(ContextGrid, ActionExport))
	assert.Equal(t, "ctrl+h", KeyFor(ContextGlobal, ActionToggleHelp))
	assert.Equal(t, "", KeyFor(ContextUserInput, ActionExport))
}

func TestGlobalBindingsAreNotPrintable(t *testing.T) {
	for _, binding := range globalBindings {
		for _, key := range []string{binding.KeyMap.Primary, binding.KeyMap.Secondary} {
			assert.NotEqual(t, 1, len([]rune(key)), "global key %q would swallow typed text", key)
		}
	}
}
