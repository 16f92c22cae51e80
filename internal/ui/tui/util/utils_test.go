package util

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{name: "fits", in: "CLANNAD", maxWidth: 10, want: "CLANNAD"},
		{name: "exact fit", in: "CLANNAD", maxWidth: 7, want: "CLANNAD"},
		{name: "ascii", in: "Neon Genesis Evangelion", maxWidth: 10, want: "Neon Ge..."},
		{name: "wide runes", in: "凉宫春日的忧郁", maxWidth: 10, want: "凉宫春..."},
		{name: "tiny", in: "Evangelion", maxWidth: 2, want: ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.in, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), tt.maxWidth)
		})
	}
}

func TestPadToWidth(t *testing.T) {
	assert.Equal(t, "abc   ", PadToWidth("abc", 6))
	assert.Equal(t, "凉宫 ", PadToWidth("凉宫", 5))
	assert.Equal(t, 8, runewidth.StringWidth(PadToWidth("凉宫春日的忧郁", 8)))
}
