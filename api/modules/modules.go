package modules

import (
	"gotierlist/api/cache"
	"gotierlist/api/filters"
	"gotierlist/api/handlers"
	"gotierlist/pkg/config"
	"gotierlist/pkg/opgg"
	"gotierlist/pkg/redis"
)

// Module containing the necessary handlers.
type Module struct {
	TierlistHandler *handlers.TierlistHandler
	ChampionHandler *handlers.ChampionHandler
}

// ModuleDependencies is the list of shared clients used by every handler.
type ModuleDependencies struct {
	Config        *config.Config
	Redis         *redis.RedisClient
	ChampionCache cache.ChampionCache
	Opgg          *opgg.Client
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	return &Module{
		TierlistHandler: initializeTierlistHandler(deps),
		ChampionHandler: initializeChampionHandler(deps),
	}
}

// Defaults applied to the empty query parameters.
func (deps *ModuleDependencies) filterDefaults() filters.Defaults {
	return filters.Defaults{
		Region: deps.Config.Opgg.DefaultRegion,
		Tier:   deps.Config.Opgg.DefaultTier,
	}
}
