package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/iqbalbaharum/pool-delegator/internal/storage"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
	"github.com/redis/go-redis/v9"
)

// Registry fetches the pool set from the remote registry endpoint. Records
// are consumed wholesale; nothing is filtered at fetch time. A redis cache
// fronts the endpoint so repeated planning passes don't hammer it.
type Registry struct {
	url    string
	client *http.Client
	cache  *redis.Client
}

func NewRegistry(url string, cache *redis.Client) *Registry {
	return &Registry{
		url:    url,
		client: &http.Client{},
		cache:  cache,
	}
}

func (r *Registry) FetchPools(ctx context.Context) ([]types.Pool, error) {
	if r.cache != nil {
		pools, err := storage.GetCachedPools(ctx, r.cache)
		if err == nil && pools != nil {
			return pools, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", r.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var pools []types.Pool
	if err := json.NewDecoder(resp.Body).Decode(&pools); err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := storage.SetCachedPools(ctx, r.cache, pools); err != nil {
			log.Printf("registry | failed to cache pools: %v", err)
		}
	}

	return pools, nil
}
