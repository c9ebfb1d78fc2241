package modules

import (
	"gotierlist/api/handlers"
	tierlistservice "gotierlist/api/services/tierlist"
)

func initializeTierlistHandler(deps *ModuleDependencies) *handlers.TierlistHandler {
	// Initialize the tierlist service and handler.
	tierlistDeps := &tierlistservice.TierlistServiceDeps{
		Redis: deps.Redis,
		Opgg:  deps.Opgg,
	}

	tierlistService := tierlistservice.NewTierlistService(tierlistDeps)

	tierlistHandlerDeps := &handlers.TierlistHandlerDependencies{
		TierlistService: tierlistService,
		Defaults:        deps.filterDefaults(),
	}

	return handlers.NewTierlistHandler(tierlistHandlerDeps)
}
