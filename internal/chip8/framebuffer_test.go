package chip8_test

import (
	"testing"

	"github.com/bradford-hamilton/chippy/internal/chip8"
	"github.com/stretchr/testify/require"
)

func TestFramebuffer_ToggleIsXOR(t *testing.T) {
	fb := chip8.NewFramebuffer(8, 8)

	require.True(t, fb.Toggle(3, 3))
	require.True(t, fb.IsOn(3, 3))

	require.False(t, fb.Toggle(3, 3))
	require.False(t, fb.IsOn(3, 3))
}

func TestFramebuffer_WrapsNegativeCoordinates(t *testing.T) {
	fb := chip8.NewFramebuffer(8, 8)

	fb.Toggle(-1, -1)

	require.True(t, fb.IsOn(7, 7), "negative coordinates should wrap toroidally, not clamp")
}

func TestFramebuffer_WrapsPastBounds(t *testing.T) {
	fb := chip8.NewFramebuffer(8, 8)

	fb.Toggle(8, 9)

	require.True(t, fb.IsOn(0, 1))
}

func TestFramebuffer_Clear(t *testing.T) {
	fb := chip8.NewFramebuffer(4, 4)
	fb.Toggle(1, 1)

	fb.Clear()

	for _, b := range fb.Data() {
		require.Zero(t, b)
	}
}
