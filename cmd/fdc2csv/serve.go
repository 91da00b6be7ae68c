package main

import (
	"fmt"

	"go.uber.org/zap"

	httpDelivery "github.com/macrolens/fdc2csv/internal/delivery/http"
	"github.com/macrolens/fdc2csv/internal/infrastructure/cache"
	"github.com/macrolens/fdc2csv/internal/infrastructure/usda"
	"github.com/macrolens/fdc2csv/internal/usecase"
)

type ServeCmd struct{}

func (s *ServeCmd) Run(cmdCtx *Context) error {
	cfg := cmdCtx.Config
	logger := cmdCtx.Logger

	logger.Info("starting fdc2csv server",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.Duration("cache_ttl", cfg.Cache.TTL))

	assembler := usecase.NewFoodAssembler(
		usecase.NewPortionResolver(),
		usecase.NewMacroResolver(usecase.DefaultNutrientTable(), logger),
	)
	datasets := usecase.NewDatasetService(assembler, usecase.DatasetServiceConfig{
		Policy:  usecase.InvalidFoodPolicy(cfg.Processing.InvalidFoodPolicy),
		Workers: cfg.Processing.Workers,
	}, logger)

	var foods httpDelivery.FoodFetcher
	if cfg.USDA.APIKey != "" {
		memoryCache := cache.NewMemoryCache()
		defer memoryCache.Close()

		client := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL, cfg.RateLimit.USDA, logger)
		foods = usecase.NewFoodService(memoryCache, client, assembler,
			usecase.FoodServiceConfig{CacheTTL: cfg.Cache.TTL}, logger)
		logger.Info("USDA API configured", zap.String("base_url", cfg.USDA.BaseURL))
	} else {
		logger.Warn("USDA API key not configured; /api/v1/foods is disabled")
	}

	handler := httpDelivery.NewHandler(datasets, foods, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	return router.Run(addr)
}
