package modules

import (
	"gotierlist/api/handlers"
	championservice "gotierlist/api/services/champion"
)

func initializeChampionHandler(deps *ModuleDependencies) *handlers.ChampionHandler {
	championDeps := &championservice.ChampionServiceDeps{
		ChampionCache: deps.ChampionCache,
		Opgg:          deps.Opgg,
		DDragonURL:    deps.Config.DDragon.BaseURL,
	}

	championService := championservice.NewChampionService(championDeps)

	championHandlerDeps := &handlers.ChampionHandlerDependencies{
		ChampionService: championService,
		Defaults:        deps.filterDefaults(),
	}

	return handlers.NewChampionHandler(championHandlerDeps)
}
