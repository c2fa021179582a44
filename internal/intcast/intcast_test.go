package intcast_test

import (
	"testing"

	"github.com/bradford-hamilton/chippy/internal/intcast"
	"github.com/stretchr/testify/require"
)

func TestCast_InRange(t *testing.T) {
	v, err := intcast.Cast[byte](200)

	require.NoError(t, err)
	require.Equal(t, byte(200), v)
}

func TestCast_OutOfRange(t *testing.T) {
	_, err := intcast.Cast[int8](200)

	require.Error(t, err)
	var bre *intcast.BadRangeError
	require.ErrorAs(t, err, &bre)
}

func TestMustCast_PanicsOnBadRange(t *testing.T) {
	require.Panics(t, func() {
		intcast.MustCast[byte](-1)
	})
}

func TestMustCast_ReturnsValueInRange(t *testing.T) {
	require.Equal(t, uint16(300), intcast.MustCast[uint16](300))
}
