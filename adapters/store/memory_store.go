package store

import (
	"context"
	"sync"
	"time"

	"github.com/propstack/walletgate/core"
	"github.com/propstack/walletgate/ports"
)

// MemoryStore is an in-memory implementation of the ChallengeStore interface.
// A single mutex guards the map; the lookup-check-mark sequence in Consume
// runs entirely under it, so two concurrent Consume calls for the same token
// can never both observe Used == false.
type MemoryStore struct {
	mu         sync.Mutex
	challenges map[string]*core.Challenge
	ttl        time.Duration
	now        func() time.Time
}

// NewMemoryStore creates a new in-memory store with the given challenge TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		challenges: make(map[string]*core.Challenge),
		ttl:        ttl,
		now:        time.Now,
	}
}

var _ ports.ChallengeStore = (*MemoryStore)(nil)

// Put stores a challenge, sweeping expired entries first. The sweep runs on
// every issuance so the map stays bounded without a background timer.
func (s *MemoryStore) Put(ctx context.Context, ch core.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, pending := range s.challenges {
		if now.Sub(pending.CreatedAt) >= s.ttl {
			delete(s.challenges, token)
		}
	}

	stored := ch
	s.challenges[ch.Token] = &stored
	return nil
}

// Consume marks a challenge as used and returns it.
func (s *MemoryStore) Consume(ctx context.Context, token string) (core.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[token]
	if !ok {
		return core.Challenge{}, core.ErrChallengeNotFound
	}
	if ch.Used {
		return core.Challenge{}, core.ErrChallengeUsed
	}
	if s.now().Sub(ch.CreatedAt) >= s.ttl {
		delete(s.challenges, token)
		return core.Challenge{}, core.ErrChallengeExpired
	}

	ch.Used = true
	return *ch, nil
}
