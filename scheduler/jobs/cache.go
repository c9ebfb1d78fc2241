package jobs

import (
	"context"
	"fmt"
	cacherepo "gotierlist/api/repositories/cache"
	"gotierlist/pkg/assets"
	"gotierlist/pkg/config"
	"gotierlist/pkg/database"
	"gotierlist/pkg/logger"
	"gotierlist/pkg/models/champion"
	"gotierlist/pkg/redis"
)

// Part of the asset revalidator used by the job.
type ChampionRevalidator interface {
	RevalidateChampionCache(ctx context.Context, language string) ([]*champion.Champion, error)
}

// RevalidateCache refreshes the champion assets on redis and on the database backup.
func RevalidateCache(cfg *config.Config) error {
	return runWithLogger(cfg, "cache-revalidation", func(ctx context.Context, l *logger.Logger) error {
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("couldn't get redis connection: %w", err)
		}
		defer redisClient.Close()

		deps := &assets.AssetsDeps{
			BaseURL: cfg.DDragon.BaseURL,
			Store:   redisClient,
			Logger:  l,
		}

		if cfg.Database.Enabled {
			db, err := database.NewConnection(cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("couldn't get database connection: %w", err)
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			}()
			deps.Backup = cacherepo.NewCacheRepository(db)
		}

		return revalidateChampions(ctx, assets.NewRevalidator(deps), cfg.DDragon.Language, l)
	})
}

func revalidateChampions(ctx context.Context, revalidator ChampionRevalidator, language string, l Logger) error {
	champions, err := revalidator.RevalidateChampionCache(ctx, language)
	if err != nil {
		return fmt.Errorf("error revalidating champion cache: %w", err)
	}

	l.Infof("Stored %d champions", len(champions))
	return nil
}
