package lock

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/fatflowers/letterpay/pkg/tool"
)

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisLocker coordinates ticks across service instances.
type RedisLocker struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, script: redis.NewScript(releaseScript)}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", false, errors.New("lock client not configured")
	}
	if err := validate(key, ttl); err != nil {
		return "", false, err
	}
	token := tool.GenerateToken()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// Release deletes key only if token still owns it, so an expired holder
// cannot free a lock that has since been taken by someone else.
func (l *RedisLocker) Release(ctx context.Context, key, token string) error {
	if l == nil || l.client == nil || key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}
