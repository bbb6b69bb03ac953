package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	got, err := NormalizeAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")
	require.NoError(t, err)
	assert.Equal(t, "0xab5801a7d398351b8be11c439e05c5b3259aec9b", got)

	for _, bad := range []string{
		"",
		"0x",
		"0x123",
		"ab5801a7d398351b8be11c439e05c5b3259aec9b",                   // missing prefix
		"0xgg5801a7d398351b8be11c439e05c5b3259aec9b",                 // not hex
		"0xab5801a7d398351b8be11c439e05c5b3259aec9b00",               // too long
		"0x ab5801a7d398351b8be11c439e05c5b3259aec9",                 // whitespace
		"0xab5801a7d398351b8be11c439e05c5b3259aec9b extra",           // trailing junk
	} {
		_, err := NormalizeAddress(bad)
		assert.ErrorIs(t, err, ErrInvalidAddress, bad)
	}
}

func TestSameAddress(t *testing.T) {
	assert.True(t, SameAddress(
		"0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		"0xab5801a7d398351b8be11c439e05c5b3259aec9b",
	))
	assert.False(t, SameAddress(
		"0xab5801a7d398351b8be11c439e05c5b3259aec9b",
		"0x0000000000000000000000000000000000000000",
	))
}
