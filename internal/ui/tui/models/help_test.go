package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpContent(t *testing.T) {
	tests := []struct {
		view     View
		contains []string
		absent   []string
	}{
		{
			view:     ViewGrid,
			contains: []string{"Anime Grid", "Export the grid as a PNG image", "While searching", "Reading the grid", "Quit application"},
		},
		{
			view:     ViewAnalysis,
			contains: []string{"Taste Analysis", "API key", "Move cursor up"},
			absent:   []string{"Export the grid as a PNG image"},
		},
		{
			view:     ViewUserInput,
			contains: []string{"Load the grid for the entered user"},
		},
		{
			view:     ViewLoading,
			contains: []string{"General", "Toggle help screen"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			content := NewHelpModel(tt.view).content()
			for _, s := range tt.contains {
				assert.Contains(t, content, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, content, s)
			}
		})
	}
}

func TestBindingTableSkipsGlobalActions(t *testing.T) {
	help := NewHelpModel(ViewUserInput).content()
	// esc is global, so the prompt's own esc binding is not listed again
	assert.NotContains(t, help, ": Cancel\n")
}
