package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/macrolens/fdc2csv/internal/domain"
	"github.com/macrolens/fdc2csv/internal/infrastructure/output"
	"go.uber.org/zap"
)

// DatasetBuilder converts a raw FDC data set into sorted foods
type DatasetBuilder interface {
	BuildFromJSON(ctx context.Context, data []byte) ([]domain.Food, error)
}

// FoodFetcher looks up a single food by FDC ID
type FoodFetcher interface {
	GetFood(ctx context.Context, fdcID string) (*domain.Food, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	datasets DatasetBuilder
	foods    FoodFetcher
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler. foods may be nil when no USDA API
// key is configured.
func NewHandler(datasets DatasetBuilder, foods FoodFetcher, logger *zap.Logger) *Handler {
	return &Handler{
		datasets: datasets,
		foods:    foods,
		logger:   logger,
	}
}

// FoodResponse is the JSON body for a single food lookup
type FoodResponse struct {
	FdcID  string `json:"fdcId"`
	Source string `json:"source"`
	domain.NutritionRecord
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fdc2csv",
		"version": "1.0.0",
	})
}

// Convert turns an uploaded FDC JSON data set into CSV
func (h *Handler) Convert(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	foods, err := h.datasets.BuildFromJSON(c.Request.Context(), body)
	if err != nil {
		h.logger.Warn("convert failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="foods.csv"`)
	c.Status(http.StatusOK)
	if err := output.NewCSVWriter(c.Writer).Write(c.Request.Context(), foods); err != nil {
		// headers are already sent
		h.logger.Error("writing CSV response", zap.Error(err))
	}
}

// GetFood returns the nutrition record for one FDC ID
func (h *Handler) GetFood(c *gin.Context) {
	if h.foods == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "USDA API key is not configured"})
		return
	}

	food, err := h.foods.GetFood(c.Request.Context(), c.Param("fdcId"))
	if err != nil {
		h.logger.Warn("food lookup failed", zap.String("fdc_id", c.Param("fdcId")), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, FoodResponse{
		FdcID:           food.FdcID,
		Source:          food.Source,
		NutritionRecord: food.NutritionRecord(),
	})
}

// statusForError maps domain errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidDataset), errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingFdcID),
		errors.Is(err, domain.ErrMissingDescription),
		errors.Is(err, domain.ErrUnsupportedDataType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUSDAAPIFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
