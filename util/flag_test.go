package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexFlag(t *testing.T) {
	var h HexFlag

	require.NoError(t, h.Set("0x048d"))
	require.Equal(t, HexFlag(0x048d), h)
	require.Equal(t, "0x48d", h.String())

	require.NoError(t, h.Set("0X6004"))
	require.Equal(t, HexFlag(0x6004), h)

	require.NoError(t, h.Set("1165"))
	require.Equal(t, HexFlag(1165), h)

	require.Error(t, h.Set("0xgg"))
	require.Error(t, h.Set("banana"))
	require.Error(t, h.Set("0x10000")) // does not fit in 16 bits
}
