package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/macrolens/fdc2csv/internal/domain"
	"go.uber.org/zap"
)

var fdcIDPattern = regexp.MustCompile(`^[0-9]+$`)

// FoodServiceConfig holds configuration for the food service
type FoodServiceConfig struct {
	CacheTTL time.Duration
}

// FoodService looks up single foods from the USDA API with caching
type FoodService struct {
	cache     domain.CacheRepository
	client    domain.USDAClient
	assembler *FoodAssembler
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewFoodService creates a new food service with dependencies
func NewFoodService(
	cache domain.CacheRepository,
	client domain.USDAClient,
	assembler *FoodAssembler,
	config FoodServiceConfig,
	logger *zap.Logger,
) *FoodService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // Default 30 days
	}

	return &FoodService{
		cache:     cache,
		client:    client,
		assembler: assembler,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// GetFood returns the normalized food for an FDC ID.
// Flow: check cache -> fetch from USDA -> assemble -> cache -> return
func (s *FoodService) GetFood(ctx context.Context, fdcID string) (*domain.Food, error) {
	if !fdcIDPattern.MatchString(fdcID) {
		return nil, domain.ErrInvalidRequest
	}

	key := cacheKey(fdcID)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		return cached, nil
	}

	src, err := s.client.GetFood(ctx, fdcID)
	if err != nil {
		return nil, err
	}

	food, err := s.assembler.Assemble(*src)
	if err != nil {
		return nil, fmt.Errorf("assembling food %s: %w", fdcID, err)
	}

	if err := s.cache.Set(ctx, key, &food, s.cacheTTL); err != nil {
		// caching is best effort
		s.logger.Warn("failed to cache food", zap.String("fdc_id", fdcID), zap.Error(err))
	}

	return &food, nil
}

// cacheKey format: "food:{fdcId}"
func cacheKey(fdcID string) string {
	return "food:" + fdcID
}
