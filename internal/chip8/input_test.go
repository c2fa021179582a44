package chip8_test

import (
	"testing"

	"github.com/bradford-hamilton/chippy/internal/chip8"
	"github.com/stretchr/testify/require"
)

func TestInputState_PressSetsLastKey(t *testing.T) {
	in := chip8.NewInputState()
	require.False(t, in.HasLastKey())

	in.SetKey(0xA, true)

	require.True(t, in.IsPressed(0xA))
	require.True(t, in.HasLastKey())
	require.Equal(t, 0xA, in.LastKey())
}

func TestInputState_ReleaseDoesNotClearLastKey(t *testing.T) {
	in := chip8.NewInputState()
	in.SetKey(0x3, true)

	in.SetKey(0x3, false)

	require.False(t, in.IsPressed(0x3))
	require.True(t, in.HasLastKey())
	require.Equal(t, 0x3, in.LastKey())
}

func TestInputState_ClearLastKeyKeepsPressedState(t *testing.T) {
	in := chip8.NewInputState()
	in.SetKey(0x5, true)

	in.ClearLastKey()

	require.False(t, in.HasLastKey())
	require.True(t, in.IsPressed(0x5), "clearing the latch must not release the key")
}

func TestInputState_Clear(t *testing.T) {
	in := chip8.NewInputState()
	in.SetKey(0x1, true)

	in.Clear()

	require.False(t, in.IsPressed(0x1))
	require.False(t, in.HasLastKey())
}
