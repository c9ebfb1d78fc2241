package tierlistservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gotierlist/api/dto"
	"gotierlist/api/filters"
	"gotierlist/pkg/messages"
	"gotierlist/pkg/opgg"
	"strings"
	"time"
)

const (
	TierlistRedisCacheDuration = time.Hour
	TierlistRedisReadTimeout   = 200 * time.Millisecond
	tierlistKeyPrefix          = "opgg:tierlist"
)

// ErrNoDefaultTierlist is returned when the default state has no list for the mode.
var ErrNoDefaultTierlist = errors.New("no default tierlist")

type TierlistRedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// OpggClient is the part of the op.gg client used by the tierlist service.
type OpggClient interface {
	GetTierList(ctx context.Context, query opgg.TierListQuery) (*opgg.TierList, error)
	GetDataVersion(ctx context.Context, region string, mode string) (*opgg.VersionsResponse, error)
	LatestVersion(ctx context.Context, region string, mode string) (string, error)
	DefaultTierList(mode string) *opgg.TierList
	Stats() map[string]opgg.Stats
}

// Tierlist service, reading from the shared redis cache before hitting op.gg.
type TierlistService struct {
	redis TierlistRedisClient
	opgg  OpggClient
}

// TierlistServiceDeps is the dependency list for the tierlist service.
type TierlistServiceDeps struct {
	Redis TierlistRedisClient
	Opgg  OpggClient
}

// NewTierlistService creates a tierlist service.
func NewTierlistService(deps *TierlistServiceDeps) *TierlistService {
	return &TierlistService{
		redis: deps.Redis,
		opgg:  deps.Opgg,
	}
}

// GetTierlist get the tierlist based on the filters.
// An empty version is resolved to the latest one of the region and mode.
func (ts *TierlistService) GetTierlist(ctx context.Context, filters *filters.TierlistFilter) (*opgg.TierList, error) {
	if filters == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	query := opgg.TierListQuery{
		Region:  filters.Region,
		Mode:    filters.Mode,
		Tier:    filters.Tier,
		Version: filters.Version,
	}

	if query.Version == "" {
		version, err := ts.opgg.LatestVersion(ctx, query.Region, query.Mode)
		if err != nil {
			return nil, fmt.Errorf("couldn't resolve the latest version: %w", err)
		}
		query.Version = version
	}

	key := getTierlistKey(query)
	if redisData := ts.getFromRedis(ctx, key); redisData != nil {
		return redisData, nil
	}

	result, err := ts.opgg.GetTierList(ctx, query)
	if err != nil {
		return nil, err
	}

	ts.populateCache(ctx, key, result)

	return result, nil
}

// GetDefaultTierlist returns the tierlist loaded on startup for the mode.
func (ts *TierlistService) GetDefaultTierlist(mode string) (*opgg.TierList, error) {
	list := ts.opgg.DefaultTierList(mode)
	if list == nil {
		return nil, fmt.Errorf(messages.NoDefaultTierlist+": %w", mode, ErrNoDefaultTierlist)
	}
	return list, nil
}

// GetVersions returns the versions available for the region and mode.
func (ts *TierlistService) GetVersions(ctx context.Context, filters *filters.VersionsFilter) (*dto.VersionsResult, error) {
	if filters == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	versions, err := ts.opgg.GetDataVersion(ctx, filters.Region, filters.Mode)
	if err != nil {
		return nil, err
	}

	return dto.NewVersionsResult(filters.Region, filters.Mode, versions.Data), nil
}

// GetCacheStats returns the memoization counters of the op.gg client.
func (ts *TierlistService) GetCacheStats() map[string]opgg.Stats {
	return ts.opgg.Stats()
}

// CacheTierlist writes the list on the shared cache.
func (ts *TierlistService) CacheTierlist(ctx context.Context, list *opgg.TierList) error {
	if list == nil {
		return errors.New("can't cache a nil tierlist")
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("couldn't convert the tierlist to json: %w", err)
	}

	key := getTierlistKey(opgg.TierListQuery{
		Region:  list.Region,
		Mode:    list.Mode,
		Tier:    list.Tier,
		Version: list.Version,
	})
	return ts.redis.Set(ctx, key, string(data), TierlistRedisCacheDuration)
}

// getFromRedis retrieves the data from the redis.
// Any failure is treated as a miss.
func (ts *TierlistService) getFromRedis(ctx context.Context, key string) *opgg.TierList {
	ctx, cancel := context.WithTimeout(ctx, TierlistRedisReadTimeout)
	defer cancel()

	redisCached, err := ts.redis.Get(ctx, key)
	if err != nil || redisCached == "" {
		return nil
	}

	var tierlist opgg.TierList
	if err := json.Unmarshal([]byte(redisCached), &tierlist); err != nil {
		return nil
	}

	return &tierlist
}

// populateCache sets the redis cache, ignoring failures.
func (ts *TierlistService) populateCache(ctx context.Context, key string, data *opgg.TierList) {
	if j, err := json.Marshal(data); err == nil {
		ts.redis.Set(ctx, key, string(j), TierlistRedisCacheDuration)
	}
}

// getTierlistKey generates the cache key.
func getTierlistKey(query opgg.TierListQuery) string {
	return strings.Join([]string{
		tierlistKeyPrefix,
		query.Region,
		query.Mode,
		query.Tier,
		query.Version,
	}, ":")
}
