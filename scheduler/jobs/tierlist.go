package jobs

import (
	"context"
	"errors"
	"fmt"
	"gotierlist/api/cache"
	cacherepo "gotierlist/api/repositories/cache"
	tierlistservice "gotierlist/api/services/tierlist"
	"gotierlist/pkg/config"
	"gotierlist/pkg/database"
	"gotierlist/pkg/logger"
	"gotierlist/pkg/opgg"
	"gotierlist/pkg/redis"
)

// Logger used by the jobs.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Source of the default tierlists.
type DefaultTierlistSource interface {
	InitDefaultTiers(ctx context.Context) error
	DefaultTierList(mode string) *opgg.TierList
}

// Destination of the warmed tierlists.
type TierlistCacher interface {
	CacheTierlist(ctx context.Context, list *opgg.TierList) error
}

// WarmTierlists loads the default tierlists from op.gg and writes them on the shared redis cache.
func WarmTierlists(cfg *config.Config) error {
	return runWithLogger(cfg, "tierlist-warmup", func(ctx context.Context, l *logger.Logger) error {
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("couldn't get redis connection: %w", err)
		}
		defer redisClient.Close()

		cacheDeps := &cache.ChampionCacheDeps{Redis: redisClient}
		if cfg.Database.Enabled {
			db, err := database.NewConnection(cfg.Database.URL)
			if err != nil {
				l.Warnf("Running without the database backup: %v", err)
			} else {
				defer func() {
					if sqlDB, err := db.DB(); err == nil {
						sqlDB.Close()
					}
				}()
				cacheDeps.Repository = cacherepo.NewCacheRepository(db)
			}
		}

		// The cache only lives for this run.
		cacheCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		championCache := cache.NewChampionCache(cacheCtx, cacheDeps)

		client, err := opgg.NewClient(&opgg.ClientDeps{
			BaseURL:       cfg.Opgg.BaseURL,
			Timeout:       cfg.Opgg.Timeout,
			Resolver:      cache.NewResolver(championCache, cfg.DDragon.BaseURL),
			Logger:        l,
			DefaultRegion: cfg.Opgg.DefaultRegion,
			DefaultTier:   cfg.Opgg.DefaultTier,
			CacheSize:     cfg.Opgg.CacheSize,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		service := tierlistservice.NewTierlistService(&tierlistservice.TierlistServiceDeps{
			Redis: redisClient,
			Opgg:  client,
		})

		return warmTierlists(ctx, client, service, l)
	})
}

// Cache every default tierlist that could be loaded.
func warmTierlists(ctx context.Context, source DefaultTierlistSource, cacher TierlistCacher, l Logger) error {
	var errs []error
	if err := source.InitDefaultTiers(ctx); err != nil {
		errs = append(errs, err)
	}

	warmed := 0
	for _, mode := range opgg.DefaultModes {
		list := source.DefaultTierList(mode)
		if list == nil {
			continue
		}

		if err := cacher.CacheTierlist(ctx, list); err != nil {
			l.Errorf("Couldn't cache the %s tierlist: %v", mode, err)
			errs = append(errs, err)
			continue
		}
		warmed++
	}

	l.Infof("Warmed %d of %d default tierlists", warmed, len(opgg.DefaultModes))
	return errors.Join(errs...)
}
