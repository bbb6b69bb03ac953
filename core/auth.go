package core

import "time"

// Challenge represents a one-time authentication challenge
type Challenge struct {
	Token     string    // Random nonce the caller must sign, also the store key
	Address   string    // Ethereum address the challenge is bound to (lower-cased)
	Message   string    // Exact message text returned to the caller, stored verbatim
	CreatedAt time.Time // When the challenge was created
	Used      bool      // Set once, on successful verification
}

// Session represents a validated wallet session
type Session struct {
	ID         string    // JWT ID
	Address    string    // Verified wallet address (lower-cased)
	TokenType  string    // Always "access"
	AuthMethod string    // Always "wallet-signature"
	IssuedAt   time.Time // When the session token was issued
	ExpiresAt  time.Time // When the session token expires
}
