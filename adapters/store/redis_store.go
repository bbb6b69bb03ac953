package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/propstack/walletgate/core"
	"github.com/propstack/walletgate/ports"
)

// consumeScript performs the lookup-check-mark sequence server-side so that
// concurrent Consume calls for the same token are serialized by Redis. It
// returns the challenge fields on success or a status marker otherwise.
var consumeScript = redis.NewScript(`
local v = redis.call("HMGET", KEYS[1], "used", "created_at", "address", "message")
if not v[1] then
	return {"not_found"}
end
if v[1] == "1" then
	return {"used"}
end
if tonumber(ARGV[1]) - tonumber(v[2]) >= tonumber(ARGV[2]) then
	redis.call("DEL", KEYS[1])
	return {"expired"}
end
redis.call("HSET", KEYS[1], "used", "1")
return {"ok", v[2], v[3], v[4]}
`)

// RedisStore is a Redis implementation of the ChallengeStore interface for
// multi-instance deployments. Expiry is enforced both by the consume script
// and by a key TTL of twice the challenge TTL; the grace window lets a stale
// consume report Expired instead of NotFound.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore creates a new Redis-backed store with the given challenge TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "walletgate:challenge:",
		ttl:    ttl,
		now:    time.Now,
	}
}

var _ ports.ChallengeStore = (*RedisStore)(nil)

// Put stores a challenge as a Redis hash. Redis key expiry replaces the
// in-memory sweep, so no explicit cleanup pass is needed here.
func (s *RedisStore) Put(ctx context.Context, ch core.Challenge) error {
	key := s.prefix + ch.Token

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"address":    ch.Address,
		"message":    ch.Message,
		"created_at": ch.CreatedAt.Unix(),
		"used":       "0",
	})
	pipe.Expire(ctx, key, 2*s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	return nil
}

// Consume atomically marks a challenge as used and returns it.
func (s *RedisStore) Consume(ctx context.Context, token string) (core.Challenge, error) {
	key := s.prefix + token

	res, err := consumeScript.Run(ctx, s.client,
		[]string{key},
		s.now().Unix(),
		int64(s.ttl.Seconds()),
	).StringSlice()
	if err != nil {
		return core.Challenge{}, fmt.Errorf("failed to consume challenge: %w", err)
	}
	if len(res) == 0 {
		return core.Challenge{}, core.ErrChallengeNotFound
	}

	switch res[0] {
	case "used":
		return core.Challenge{}, core.ErrChallengeUsed
	case "expired":
		return core.Challenge{}, core.ErrChallengeExpired
	case "ok":
	default:
		return core.Challenge{}, core.ErrChallengeNotFound
	}

	createdAt, err := parseUnix(res[1])
	if err != nil {
		return core.Challenge{}, fmt.Errorf("corrupt challenge record: %w", err)
	}

	return core.Challenge{
		Token:     token,
		Address:   res[2],
		Message:   res[3],
		CreatedAt: createdAt,
		Used:      true,
	}, nil
}

func parseUnix(s string) (time.Time, error) {
	var secs int64
	if _, err := fmt.Sscanf(s, "%d", &secs); err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0), nil
}
