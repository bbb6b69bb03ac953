package siwe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIsDeterministic(t *testing.T) {
	params := Params{
		Domain:    "propstack.app",
		Address:   "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		Statement: "Sign in to PropStack - Decentralized Real Estate Platform",
		URI:       "https://propstack.app",
		ChainID:   137,
		Nonce:     "a3f1c2d4e5b6978811223344556677aa",
		IssuedAt:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}

	first := Render(params)
	second := Render(params)
	assert.Equal(t, first, second)
}

func TestRenderFormat(t *testing.T) {
	params := Params{
		Domain:    "propstack.app",
		Address:   "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		Statement: "Sign in to PropStack",
		URI:       "https://propstack.app",
		ChainID:   137,
		Nonce:     "deadbeef",
		IssuedAt:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}

	want := `propstack.app wants you to sign in with your Ethereum account:
0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B

Sign in to PropStack

URI: https://propstack.app
Version: 1
Chain ID: 137
Nonce: deadbeef
Issued At: 2026-03-14T09:26:53Z`

	require.Equal(t, want, Render(params))
}

func TestExtractNonce(t *testing.T) {
	msg := Render(Params{
		Domain:   "propstack.app",
		Address:  "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		URI:      "https://propstack.app",
		ChainID:  1,
		Nonce:    "cafebabe",
		IssuedAt: time.Now(),
	})

	assert.Equal(t, "cafebabe", ExtractNonce(msg))
	assert.Equal(t, "", ExtractNonce("no nonce line here"))
}
