// Package runlock guards against overlapping runs from the same learner.
package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/gradebench.net/internal/core/ports/secondary"
)

var _ secondary.RunLock = (*RedisRunLock)(nil)

// releaseScript deletes the key only while it still holds the caller's token,
// so a run that outlived its TTL cannot free a lock taken by the next run.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

type RedisRunLock struct {
	redisClient *redis.Client
	newToken    func() string
}

func NewRedisRunLock(redisClient *redis.Client) *RedisRunLock {
	return &RedisRunLock{
		redisClient: redisClient,
		newToken:    uuid.NewString,
	}
}

func (l *RedisRunLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := l.newToken()
	ok, err := l.redisClient.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *RedisRunLock) Release(ctx context.Context, key, token string) error {
	if err := l.redisClient.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}
	return nil
}
