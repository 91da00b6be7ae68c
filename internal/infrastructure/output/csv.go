package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/macrolens/fdc2csv/internal/domain"
)

// CSVWriter writes nutrition records as CSV with a header row. Lines end in
// CRLF, as RFC 4180 asks.
type CSVWriter struct {
	w io.Writer
}

// NewCSVWriter creates a writer that emits to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// Write emits the header followed by one row per food, in the given order.
func (c *CSVWriter) Write(ctx context.Context, foods []domain.Food) error {
	writer := csv.NewWriter(c.w)
	writer.UseCRLF = true

	if err := writer.Write(domain.RecordHeaders); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, food := range foods {
		if err := writer.Write(food.NutritionRecord().Fields()); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", food.FdcID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
