package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/macrolens/fdc2csv/internal/domain"
	"github.com/macrolens/fdc2csv/internal/infrastructure/output"
	"github.com/macrolens/fdc2csv/internal/usecase"
)

type ConvertCmd struct {
	InputFile   string `arg:"" help:"USDA FDC JSON data set to process" type:"existingfile"`
	OutputFile  string `help:"Output file for CSV data (default: stdout)" short:"o" type:"path"`
	Format      string `help:"Output format: csv or sqlite (default from config)"`
	SkipInvalid bool   `help:"Skip foods missing fdcId or description instead of aborting"`
	Workers     int    `help:"Number of foods assembled in parallel (default from config)"`
}

func (c *ConvertCmd) Run(cmdCtx *Context) error {
	cfg := cmdCtx.Config
	logger := cmdCtx.Logger

	format := cfg.Output.Format
	if c.Format != "" {
		format = c.Format
	}
	if format != "csv" && format != "sqlite" {
		return fmt.Errorf("unknown output format %q", format)
	}
	policy := usecase.InvalidFoodPolicy(cfg.Processing.InvalidFoodPolicy)
	if c.SkipInvalid {
		policy = usecase.PolicySkip
	}
	workers := cfg.Processing.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}

	data, err := os.ReadFile(c.InputFile)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	logger.Info("loaded data set", zap.String("file", c.InputFile), zap.Int("bytes", len(data)))

	assembler := usecase.NewFoodAssembler(
		usecase.NewPortionResolver(),
		usecase.NewMacroResolver(usecase.DefaultNutrientTable(), logger),
	)
	datasets := usecase.NewDatasetService(assembler, usecase.DatasetServiceConfig{
		Policy:  policy,
		Workers: workers,
	}, logger)

	ctx := context.Background()
	foods, err := datasets.BuildFromJSON(ctx, data)
	if err != nil {
		return err
	}

	return c.write(ctx, format, foods, logger)
}

func (c *ConvertCmd) write(ctx context.Context, format string, foods []domain.Food, logger *zap.Logger) error {
	if format == "sqlite" {
		if c.OutputFile == "" {
			return errors.New("sqlite output requires --output-file")
		}
		writer, err := output.NewSQLiteWriter(c.OutputFile)
		if err != nil {
			return err
		}
		defer writer.Close()
		if err := writer.Write(ctx, foods); err != nil {
			return err
		}
		logger.Info("wrote sqlite", zap.String("file", c.OutputFile), zap.Int("foods", len(foods)))
		return nil
	}

	var w io.Writer = os.Stdout
	if c.OutputFile != "" {
		f, err := os.Create(c.OutputFile)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := output.NewCSVWriter(w).Write(ctx, foods); err != nil {
		return err
	}
	logger.Info("wrote csv", zap.String("file", c.OutputFile), zap.Int("foods", len(foods)))
	return nil
}
