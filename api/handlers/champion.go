package handlers

import (
	"gotierlist/api/filters"
	championservice "gotierlist/api/services/champion"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChampionHandler is the handler for the champion endpoints.
type ChampionHandler struct {
	ChampionService *championservice.ChampionService
	defaults        filters.Defaults
}

type ChampionHandlerDependencies struct {
	ChampionService *championservice.ChampionService
	Defaults        filters.Defaults
}

// NewChampionHandler creates a new instance of the champion handler.
func NewChampionHandler(deps *ChampionHandlerDependencies) *ChampionHandler {
	return &ChampionHandler{
		ChampionService: deps.ChampionService,
		defaults:        deps.Defaults,
	}
}

// Helper to bind the default URI params for champions.
func (h *ChampionHandler) bindURIParams(c *gin.Context) (*filters.ChampionURIParams, error) {
	var mp filters.ChampionURIParams
	if err := c.ShouldBindUri(&mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// GetChampionData is the handler to return all available data for a given champion.
func (h *ChampionHandler) GetChampionData(c *gin.Context) {
	pp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters, err := filters.NewGetChampionDataFilter(pp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	championData, err := h.ChampionService.GetChampionData(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": championData})
}

// GetAllChampions is the handler to return all available data for all champions.
func (h *ChampionHandler) GetAllChampions(c *gin.Context) {
	championData, err := h.ChampionService.GetAllChampions(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": championData})
}

// GetChampionBuild is the handler to return the op.gg build of a champion.
func (h *ChampionHandler) GetChampionBuild(c *gin.Context) {
	pp, err := h.bindURIParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var qp filters.ChampionBuildQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters, err := filters.NewChampionBuildFilter(pp, qp, h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	build, err := h.ChampionService.GetChampionBuild(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": build})
}
