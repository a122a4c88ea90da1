package lock

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/letterpay/pkg/config"
)

// NewLocker picks Redis when redis.addr is configured, otherwise an
// in-process lock that only protects a single instance.
func NewLocker(lc fx.Lifecycle, cfg *config.Config, log *zap.SugaredLogger) Locker {
	if cfg.Redis.Addr == "" {
		log.Infow("redis not configured, using in-process reminder lock")
		return NewLocalLocker()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warnw("redis ping failed", "addr", cfg.Redis.Addr, "err", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewRedisLocker(client)
}

var Module = fx.Options(
	fx.Provide(NewLocker),
)
