package theme

import (
	"testing"

	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestKeysAreStable(t *testing.T) {
	assert.Equal(t, []string{"default", "miku", "sakura", "eva", "dark"}, Keys())
}

func TestGetFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "miku", Get("miku").Key)
	assert.Equal(t, DefaultKey, Get("vaporwave").Key)

	_, ok := Lookup("vaporwave")
	assert.False(t, ok)
}

func TestNextWrapsAround(t *testing.T) {
	key := DefaultKey
	seen := []string{}
	for range Keys() {
		key = Next(key).Key
		seen = append(seen, key)
	}
	assert.Equal(t, []string{"miku", "sakura", "eva", "dark", "default"}, seen)
	assert.Equal(t, DefaultKey, Next("unknown").Key)
}

func TestCellColors(t *testing.T) {
	th := Get("eva")

	assert.Equal(t, CellColors{Background: "#9C27B0", Foreground: "#FFFFFF"}, th.CellColors(domain.TierStrong))
	assert.Equal(t, CellColors{Background: "#F3E5F5", Foreground: "#1F2937"}, th.CellColors(domain.TierLight))
	assert.Equal(t, CellColors{Background: "#FFFFFF", Foreground: "#1F2937"}, th.CellColors(domain.TierNone))
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "changed"
	assert.Equal(t, "卫宫红", Get(DefaultKey).Name)
}
