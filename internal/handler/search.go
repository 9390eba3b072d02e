package handler

import (
	"context"
	"errors"
	"net/http"

	"location-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles region search requests
type SearchHandler struct {
	service SearchService
}

// Service interface for dependency injection.
type SearchService interface {
	Search(ctx context.Context, keyword string) (service.SearchResult, error)
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Search handles GET /locations/search requests
func (h *SearchHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")

	result, err := h.service.Search(c.Request.Context(), keyword)
	if err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
