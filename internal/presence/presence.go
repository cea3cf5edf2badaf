package presence

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a user stays "online" without a refresh, so a
// crashed client eventually reads as offline even if logout never ran.
const DefaultTTL = 5 * time.Minute

// Tracker keeps per-user online flags in Redis with a liveness TTL.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTracker(client *redis.Client, ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tracker{client: client, ttl: ttl}
}

// SetOnline marks the user online until the TTL lapses.
func (t *Tracker) SetOnline(ctx context.Context, userID uint) error {
	return t.client.Set(ctx, key(userID), "1", t.ttl).Err()
}

// SetOffline clears the user's presence key.
func (t *Tracker) SetOffline(ctx context.Context, userID uint) error {
	return t.client.Del(ctx, key(userID)).Err()
}

// IsOnline reports whether the user currently holds a presence key.
func (t *Tracker) IsOnline(ctx context.Context, userID uint) (bool, error) {
	n, err := t.client.Exists(ctx, key(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// OnlineSet resolves presence for a batch of users in one round trip.
func (t *Tracker) OnlineSet(ctx context.Context, userIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	pipe := t.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(userIDs))
	for i, id := range userIDs {
		cmds[i] = pipe.Exists(ctx, key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("presence lookup failed: %w", err)
	}

	for i, id := range userIDs {
		result[id] = cmds[i].Val() > 0
	}
	return result, nil
}

func key(userID uint) string {
	return fmt.Sprintf("presence:user:%d", userID)
}
