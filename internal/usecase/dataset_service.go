package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/macrolens/fdc2csv/internal/domain"
	"github.com/macrolens/fdc2csv/internal/infrastructure/usda"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// InvalidFoodPolicy decides what happens to a food missing fdcId or description.
type InvalidFoodPolicy string

const (
	// PolicyAbort fails the whole build on the first invalid food.
	PolicyAbort InvalidFoodPolicy = "abort"
	// PolicySkip drops invalid foods and logs them.
	PolicySkip InvalidFoodPolicy = "skip"
)

// DatasetServiceConfig holds configuration for the dataset service
type DatasetServiceConfig struct {
	Policy  InvalidFoodPolicy
	Workers int
}

// DatasetService turns decoded FDC data sets into sorted foods.
type DatasetService struct {
	assembler *FoodAssembler
	policy    InvalidFoodPolicy
	workers   int
	logger    *zap.Logger
}

// NewDatasetService creates a dataset service. Workers below 1 mean sequential.
func NewDatasetService(assembler *FoodAssembler, config DatasetServiceConfig, logger *zap.Logger) *DatasetService {
	policy := config.Policy
	if policy == "" {
		policy = PolicyAbort
	}
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	return &DatasetService{
		assembler: assembler,
		policy:    policy,
		workers:   workers,
		logger:    logger,
	}
}

// BuildFromJSON decodes a raw FDC JSON data set and builds it.
func (s *DatasetService) BuildFromJSON(ctx context.Context, data []byte) ([]domain.Food, error) {
	sources, err := usda.DecodeDataset(data)
	if err != nil {
		return nil, err
	}
	return s.Build(ctx, sources)
}

// Build assembles every source food and sorts the result by name. Foods with
// equal names keep their input order.
func (s *DatasetService) Build(ctx context.Context, sources []domain.SourceFood) ([]domain.Food, error) {
	foods := make([]domain.Food, len(sources))
	errs := make([]error, len(sources))

	if s.workers == 1 {
		for i, src := range sources {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			foods[i], errs[i] = s.assembler.Assemble(src)
			if errs[i] != nil && s.policy == PolicyAbort {
				return nil, errs[i]
			}
		}
	} else if err := s.assembleParallel(ctx, sources, foods, errs); err != nil {
		return nil, err
	}

	result := make([]domain.Food, 0, len(sources))
	var skipped error
	for i, err := range errs {
		if err != nil {
			if s.policy == PolicyAbort {
				return nil, err
			}
			s.logger.Warn("skipping invalid food", zap.Error(err))
			skipped = multierr.Append(skipped, err)
			continue
		}
		result = append(result, foods[i])
	}

	if skipped != nil {
		s.logger.Warn("skipped invalid foods",
			zap.Int("count", len(multierr.Errors(skipped))),
			zap.Int("kept", len(result)))
	}

	slices.SortStableFunc(result, func(a, b domain.Food) int {
		return strings.Compare(a.Name, b.Name)
	})

	s.logger.Info("built dataset",
		zap.Int("foods", len(result)),
		zap.Int("workers", s.workers),
		zap.String("policy", string(s.policy)))

	return result, nil
}

// assembleParallel fills foods and errs by index so the result does not
// depend on scheduling.
func (s *DatasetService) assembleParallel(ctx context.Context, sources []domain.SourceFood, foods []domain.Food, errs []error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range sources {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			foods[i], errs[i] = s.assembler.Assemble(sources[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("assembling foods: %w", err)
	}
	return nil
}
