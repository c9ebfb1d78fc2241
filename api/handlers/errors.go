package handlers

import (
	"errors"
	"gotierlist/api/cache"
	tierlistservice "gotierlist/api/services/tierlist"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Write the error with the status matching its cause.
// Missing resources are a 404, everything else uses the fallback status.
func respondError(c *gin.Context, err error, fallback int) {
	status := fallback
	switch {
	case errors.Is(err, cache.ErrChampionNotFound), errors.Is(err, tierlistservice.ErrNoDefaultTierlist):
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
