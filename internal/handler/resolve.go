package handler

import (
	"context"
	"net/http"

	"location-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ResolveHandler handles region resolution requests
type ResolveHandler struct {
	service ResolveService
}

// Service interface for dependency injection.
type ResolveService interface {
	Resolve(ctx context.Context, region models.RegionSummary) (*models.Location, error)
}

// NewResolveHandler creates a new resolve handler
func NewResolveHandler(svc ResolveService) *ResolveHandler {
	return &ResolveHandler{service: svc}
}

// Resolve handles POST /locations/resolve requests
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var region models.RegionSummary
	if err := c.ShouldBindJSON(&region); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: region_cd is required"})
		return
	}

	location, err := h.service.Resolve(c.Request.Context(), region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, location)
}
