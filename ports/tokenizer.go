package ports

import "github.com/propstack/walletgate/core"

// Tokenizer converts between sessions and bearer tokens
type Tokenizer interface {
	// SessionToToken signs a session into a bearer token
	SessionToToken(session *core.Session) (string, error)

	// TokenToSession verifies a bearer token and returns the session it
	// carries. It returns core.ErrTokenExpired for a stale token and
	// core.ErrInvalidToken for any structural or signature failure.
	TokenToSession(token string) (*core.Session, error)
}
