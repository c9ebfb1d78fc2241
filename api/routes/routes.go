package routes

import (
	"gotierlist/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	engine.Use(RequestID())
	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.TierlistHandler:
			r.registerTierlistHandler(handler)
		case *handlers.ChampionHandler:
			r.registerChampionHandler(handler)
		}
	}
}

// Register the tierlist handler.
func (r *Router) registerTierlistHandler(handler *handlers.TierlistHandler) {
	tierlist := r.api.Group("/tierlist")
	{
		tierlist.GET("", handler.GetTierlist)
		tierlist.GET("/default/:mode", handler.GetDefaultTierlist)
		tierlist.GET("/versions", handler.GetVersions)
		tierlist.GET("/stats", handler.GetCacheStats)
	}
}

// Register the champion handler.
func (r *Router) registerChampionHandler(handler *handlers.ChampionHandler) {
	champion := r.api.Group("/champion")
	{
		champion.GET("", handler.GetAllChampions)
		champion.GET("/:championId", handler.GetChampionData)
		champion.GET("/:championId/build", handler.GetChampionBuild)
	}
}
