package handlers

import (
	"gotierlist/api/filters"
	tierlistservice "gotierlist/api/services/tierlist"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Tier list handler.
type TierlistHandler struct {
	tierlistService *tierlistservice.TierlistService
	defaults        filters.Defaults
}

type TierlistHandlerDependencies struct {
	TierlistService *tierlistservice.TierlistService
	Defaults        filters.Defaults
}

// Create a new instance of the tierlist handler.
func NewTierlistHandler(deps *TierlistHandlerDependencies) *TierlistHandler {
	return &TierlistHandler{
		tierlistService: deps.TierlistService,
		defaults:        deps.Defaults,
	}
}

// Handler for getting the tierlist.
func (h *TierlistHandler) GetTierlist(c *gin.Context) {
	var qp filters.TierlistQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters, err := filters.NewTierlistFilter(qp, h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.tierlistService.GetTierlist(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Handler for getting the tierlist loaded on startup.
func (h *TierlistHandler) GetDefaultTierlist(c *gin.Context) {
	var pp filters.DefaultTierlistURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode, err := filters.NormalizeMode(pp.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.tierlistService.GetDefaultTierlist(mode)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Handler for listing the data versions.
func (h *TierlistHandler) GetVersions(c *gin.Context) {
	var qp filters.VersionsQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters, err := filters.NewVersionsFilter(qp, h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.tierlistService.GetVersions(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Handler for the memoization stats.
func (h *TierlistHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"result": h.tierlistService.GetCacheStats()})
}
