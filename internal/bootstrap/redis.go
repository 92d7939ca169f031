package bootstrap

import (
	"context"
	"fmt"

	"github.com/clusterkv/go-cache-gateway/config"
	cachecfg "github.com/clusterkv/go-cache-gateway/internal/cache/config"
	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to the clustered store and verifies reachability with
// a ping bounded by the lifecycle operation timeout.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig, timeouts cachecfg.Timeouts) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.LifecycleOperationTimeout())
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cluster ping: %w", err)
	}

	return client, nil
}
