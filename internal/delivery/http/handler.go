package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Searcher runs one multi-store search
type Searcher interface {
	Search(ctx context.Context, request *domain.SearchRequest) (*domain.SearchResponse, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher  Searcher
	directory domain.StoreDirectory
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(searcher Searcher, directory domain.StoreDirectory, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		searcher:  searcher,
		directory: directory,
		logger:    log.Named("http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "closetscout-backend",
		"version": Version,
	})
}

type storeInfo struct {
	ID   domain.StoreID     `json:"id"`
	Name string             `json:"name"`
	Tier domain.Tier        `json:"tier"`
	Kind domain.AdapterKind `json:"kind"`
}

// ListStores returns the stores a search may name
func (h *Handler) ListStores(c *gin.Context) {
	if h.directory == nil {
		c.JSON(http.StatusOK, gin.H{"stores": []storeInfo{}, "count": 0})
		return
	}

	all := h.directory.All()
	stores := make([]storeInfo, 0, len(all))
	for _, s := range all {
		stores = append(stores, storeInfo{ID: s.ID, Name: s.Name, Tier: s.Tier, Kind: s.Kind})
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"count":  len(stores),
	})
}

// Search handles multi-store product search requests
func (h *Handler) Search(c *gin.Context) {
	if h.searcher == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "search service not configured",
		})
		return
	}

	var request domain.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": bindingMessage(err),
		})
		return
	}

	response, err := h.searcher.Search(c.Request.Context(), &request)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest),
			errors.Is(err, domain.ErrEmptyQuery),
			errors.Is(err, domain.ErrNoStoresSelected):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.FromContext(c.Request.Context(), h.logger).Error("search failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// bindingMessage turns a bind failure into a short client-facing message
func bindingMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		switch validationErrs[0].Field() {
		case "Query":
			return domain.ErrEmptyQuery.Error()
		case "Stores":
			return domain.ErrNoStoresSelected.Error()
		}
		return domain.ErrInvalidRequest.Error()
	}
	return "request body must be a JSON object with query and stores"
}
