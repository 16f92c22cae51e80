package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"
	assert.Equal(t, "sedai/1.2.3 (https://github.com/PizzaHomicide/sedai)", UserAgent())
	assert.Equal(t, "Sedai v1.2.3 (built unknown)", GetVersionInfo())
}
