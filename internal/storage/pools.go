package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iqbalbaharum/pool-delegator/internal/types"
	"github.com/redis/go-redis/v9"
)

const (
	KEY_POOLS = "registry:pools"

	// Registry snapshots go stale quickly enough that a short TTL is all the
	// caching this needs.
	poolCacheTTL = 30 * time.Second
)

func SetCachedPools(ctx context.Context, client *redis.Client, pools []types.Pool) error {
	data, err := json.Marshal(pools)
	if err != nil {
		return err
	}

	return client.Set(ctx, KEY_POOLS, data, poolCacheTTL).Err()
}

// GetCachedPools returns nil pools with nil error on a cache miss.
func GetCachedPools(ctx context.Context, client *redis.Client) ([]types.Pool, error) {
	data, err := client.Get(ctx, KEY_POOLS).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var pools []types.Pool
	if err := json.Unmarshal([]byte(data), &pools); err != nil {
		return nil, err
	}

	return pools, nil
}
