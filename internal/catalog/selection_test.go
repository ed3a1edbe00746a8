package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleSize(t *testing.T) {
	sel := Selection{}

	sel = sel.ToggleSize("40")
	assert.Equal(t, "40", sel.Size)

	// Clicking a different size replaces the pick.
	sel = sel.ToggleSize("41")
	assert.Equal(t, "41", sel.Size)

	// Clicking the same size again clears it.
	sel = sel.ToggleSize("41")
	assert.Equal(t, "", sel.Size)
}

func TestToggleGrade(t *testing.T) {
	sel := Selection{}

	sel = sel.ToggleGrade("Original")
	assert.Equal(t, "Original", sel.Grade)

	sel = sel.ToggleGrade("Original")
	assert.Equal(t, "", sel.Grade)
}

func TestToggle_AxesAreIndependent(t *testing.T) {
	sel := Selection{Size: "40", Grade: "Premium"}

	sel = sel.ToggleSize("40")
	assert.Equal(t, "", sel.Size)
	assert.Equal(t, "Premium", sel.Grade)
}

func TestComplete(t *testing.T) {
	assert.False(t, Selection{}.Complete())
	assert.False(t, Selection{Size: "40"}.Complete())
	assert.False(t, Selection{Grade: "Original"}.Complete())
	assert.True(t, Selection{Size: "40", Grade: "Original"}.Complete())
}
