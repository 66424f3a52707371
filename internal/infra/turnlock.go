// README: Redis-backed per-conversation lock serializing merge-evaluate-persist cycles.
package infra

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"farelink/internal/types"
)

const (
	turnLockKeyPrefix = "conversation:lock:"
	// TTL bounds a lock leaked by a crashed turn; a turn is a couple of
	// network calls, so 30s is generous.
	turnLockTTL = 30 * time.Second
)

// ErrLocked means another turn on the same conversation is in flight.
var ErrLocked = errors.New("conversation turn already in progress")

// TurnLock serializes turns per conversation so two concurrent turns cannot
// both merge against the same stale specification.
type TurnLock struct {
	redis *redis.Client
}

func NewTurnLock(redis *redis.Client) *TurnLock {
	return &TurnLock{redis: redis}
}

// releaseScript deletes the lock only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// Acquire takes the lock for the conversation or fails fast with ErrLocked.
// The returned release func is safe to call once, even after TTL expiry.
func (l *TurnLock) Acquire(ctx context.Context, conversationID types.ID) (func(), error) {
	key := turnLockKeyPrefix + string(conversationID)
	token := newToken()

	ok, err := l.redis.SetNX(ctx, key, token, turnLockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}

	release := func() {
		// Best effort: an expired lock was already released by Redis.
		_ = releaseScript.Run(context.WithoutCancel(ctx), l.redis, []string{key}, token).Err()
	}
	return release, nil
}

func newToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
