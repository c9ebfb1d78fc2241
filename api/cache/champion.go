package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	repositories "gotierlist/api/repositories/cache"
	"gotierlist/pkg/assets"
	"gotierlist/pkg/messages"
	"gotierlist/pkg/models/champion"
	"sort"
	"strconv"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Default interval between the resets of the memory layer.
const ChampionMemoryTTL = 30 * time.Minute

// ErrChampionNotFound is returned when no layer holds the champion.
var ErrChampionNotFound = errors.New("champion not found")

// Redis surface used by the champion cache.
type ChampionRedis interface {
	Get(ctx context.Context, key string) (string, error)
	GetKeysByPrefix(ctx context.Context, prefix string) ([]string, error)
}

// ChampionCache serves the champion assets from memory, redis or the database backup.
type ChampionCache interface {
	GetChampionCopy(ctx context.Context, championId string) (*champion.Champion, error)
	GetAllChampions(ctx context.Context) ([]*champion.Champion, error)
	Initialize(ctx context.Context) error
}

// ChampionCacheDeps is the dependency list for the champion cache.
// Repository is optional, without it there is no fallback when redis fails.
type ChampionCacheDeps struct {
	Redis      ChampionRedis
	Repository repositories.CacheRepository
	TTL        time.Duration
}

// Create a in-memory cache with small TTL to minimize Redis calls.
type championCache struct {
	redis       ChampionRedis
	repo        repositories.CacheRepository
	memoryCache map[string]*champion.Champion
	complete    bool
	TTL         time.Duration
	lastReset   time.Time
	mu          sync.RWMutex
}

// NewChampionCache creates the cache and starts the reset worker, stopped with the context.
func NewChampionCache(ctx context.Context, deps *ChampionCacheDeps) ChampionCache {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = ChampionMemoryTTL
	}

	c := &championCache{
		redis:       deps.Redis,
		repo:        deps.Repository,
		memoryCache: make(map[string]*champion.Champion),
		TTL:         ttl,
		lastReset:   time.Now(),
	}

	go c.cacheExpirationWorker(ctx)

	return c
}

// Invalidate the current cache on every tick.
func (c *championCache) cacheExpirationWorker(ctx context.Context) {
	ticker := time.NewTicker(c.TTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.reset()
		}
	}
}

func (c *championCache) reset() {
	c.mu.Lock()
	c.memoryCache = make(map[string]*champion.Champion)
	c.complete = false
	c.lastReset = time.Now()
	c.mu.Unlock()
}

// Get a champion from the in memory cache, if not already in there, get from the redis.
// Returns a copy, so it's safe to change the returned value directly.
func (c *championCache) GetChampionCopy(ctx context.Context, championId string) (*champion.Champion, error) {
	// Try to get directly from memory.
	c.mu.RLock()
	champ, exists := c.memoryCache[championId]
	c.mu.RUnlock()
	if exists {
		champCopy := *champ
		return &champCopy, nil
	}

	// Get from the redis if doesn't found.
	cacheKey := assets.ChampionPrefix + championId
	champRedis, err := c.redis.Get(ctx, cacheKey)
	if err != nil {
		if c.repo == nil {
			if errors.Is(err, goredis.Nil) {
				return nil, fmt.Errorf(messages.ChampionNotFound+": %w", championId, ErrChampionNotFound)
			}
			return nil, fmt.Errorf("error getting from redis: %w", err)
		}

		// Get from the database fallback in that case.
		// It will be way slower, but will save in memory for the next requests.
		champRedis, err = c.repo.GetKey(ctx, cacheKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf(messages.ChampionNotFound+": %w", championId, ErrChampionNotFound)
			}
			return nil, fmt.Errorf("error getting from the database fallback: %w", err)
		}
	}

	champ = &champion.Champion{}
	if err := json.Unmarshal([]byte(champRedis), champ); err != nil {
		return nil, fmt.Errorf("failed to unmarshal champion data: %w", err)
	}

	c.mu.Lock()
	c.memoryCache[championId] = champ
	c.mu.Unlock()

	champCopy := *champ
	return &champCopy, nil
}

// GetAllChampions returns a copy of every champion, sorted by name.
func (c *championCache) GetAllChampions(ctx context.Context) ([]*champion.Champion, error) {
	c.mu.RLock()
	complete := c.complete
	c.mu.RUnlock()

	if !complete {
		if err := c.Initialize(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	champions := make([]*champion.Champion, 0, len(c.memoryCache))
	for _, champ := range c.memoryCache {
		champCopy := *champ
		champions = append(champions, &champCopy)
	}
	c.mu.RUnlock()

	sort.Slice(champions, func(i, j int) bool {
		return champions[i].Name < champions[j].Name
	})

	return champions, nil
}

// Initialize loads every champion into memory, from redis or from the backup when redis fails.
func (c *championCache) Initialize(ctx context.Context) error {
	loaded, err := c.loadFromRedis(ctx)
	if err != nil || len(loaded) == 0 {
		if c.repo == nil {
			if err != nil {
				return fmt.Errorf("couldn't load the champions from redis: %w", err)
			}
		} else {
			loaded, err = c.loadFromBackup(ctx)
			if err != nil {
				return fmt.Errorf("couldn't load the champions from the backup: %w", err)
			}
		}
	}

	c.mu.Lock()
	for _, champ := range loaded {
		c.memoryCache[champ.ID] = champ
	}
	c.complete = true
	c.mu.Unlock()

	return nil
}

// Loop through each redis key and read the champion.
func (c *championCache) loadFromRedis(ctx context.Context) ([]*champion.Champion, error) {
	keys, err := c.redis.GetKeysByPrefix(ctx, assets.ChampionPrefix)
	if err != nil {
		return nil, err
	}

	champions := make([]*champion.Champion, 0, len(keys))
	for _, key := range keys {
		champRedis, err := c.redis.Get(ctx, key)
		if err != nil {
			continue
		}

		champ, err := decodeChampion(key, champRedis)
		if err != nil {
			return nil, err
		}
		champions = append(champions, champ)
	}

	return champions, nil
}

// Get all champions by the prefix from the database.
func (c *championCache) loadFromBackup(ctx context.Context) ([]*champion.Champion, error) {
	entries, err := c.repo.GetByPrefix(ctx, assets.ChampionPrefix)
	if err != nil {
		return nil, err
	}

	champions := make([]*champion.Champion, 0, len(entries))
	for _, entry := range entries {
		champ, err := decodeChampion(entry.CacheKey, string(entry.CacheValue))
		if err != nil {
			return nil, err
		}
		champions = append(champions, champ)
	}

	return champions, nil
}

func decodeChampion(key string, value string) (*champion.Champion, error) {
	champ := &champion.Champion{}
	if err := json.Unmarshal([]byte(value), champ); err != nil {
		return nil, fmt.Errorf("failed to unmarshal champion %s: %w", key, err)
	}
	if champ.ID == "" {
		return nil, fmt.Errorf(messages.CouldNotFindId, key)
	}
	return champ, nil
}

// Resolver exposes the champion cache as the name and icon source of the tierlists.
type Resolver struct {
	cache      ChampionCache
	ddragonURL string
}

// NewResolver creates a resolver building the icons on the given DDragon cdn.
func NewResolver(cache ChampionCache, ddragonURL string) *Resolver {
	return &Resolver{cache: cache, ddragonURL: ddragonURL}
}

func (r *Resolver) ChampionName(ctx context.Context, championId int) (string, error) {
	champ, err := r.cache.GetChampionCopy(ctx, strconv.Itoa(championId))
	if err != nil {
		return "", err
	}
	return champ.Name, nil
}

func (r *Resolver) ChampionIcon(ctx context.Context, championId int) (string, error) {
	champ, err := r.cache.GetChampionCopy(ctx, strconv.Itoa(championId))
	if err != nil {
		return "", err
	}
	return champ.IconURL(r.ddragonURL), nil
}
