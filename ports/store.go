package ports

import (
	"context"

	"github.com/propstack/walletgate/core"
)

// ChallengeStore holds pending authentication challenges. Implementations
// must make Consume's lookup-check-mark sequence atomic: for a single token,
// at most one concurrent Consume may succeed.
type ChallengeStore interface {
	// Put stores a fresh challenge. Implementations sweep expired entries
	// before inserting, so the store never grows without bound.
	Put(ctx context.Context, ch core.Challenge) error

	// Consume looks up a challenge by token and marks it used. It returns
	// core.ErrChallengeNotFound, core.ErrChallengeUsed or
	// core.ErrChallengeExpired when the challenge is not consumable.
	Consume(ctx context.Context, token string) (core.Challenge, error)
}
