// Package siwe renders EIP-4361 "Sign-In With Ethereum" challenge messages.
package siwe

import (
	"fmt"
	"strings"
	"time"
)

const noncePrefix = "Nonce: "

// Params are the fields embedded in a rendered challenge message.
type Params struct {
	Domain    string
	Address   string
	Statement string
	URI       string
	ChainID   int64
	Nonce     string
	IssuedAt  time.Time
}

// Render builds the canonical multi-line message the wallet signs. It is a
// pure function: the same params always produce the same bytes, because the
// verifier never re-renders — it checks the caller's returned text against
// the stored challenge instead.
func Render(p Params) string {
	return fmt.Sprintf(`%s wants you to sign in with your Ethereum account:
%s

%s

URI: %s
Version: 1
Chain ID: %d
Nonce: %s
Issued At: %s`,
		p.Domain,
		p.Address,
		p.Statement,
		p.URI,
		p.ChainID,
		p.Nonce,
		p.IssuedAt.UTC().Format(time.RFC3339),
	)
}

// ExtractNonce returns the nonce embedded in a rendered message, or an empty
// string if no nonce line is present.
func ExtractNonce(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, noncePrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, noncePrefix))
		}
	}
	return ""
}
