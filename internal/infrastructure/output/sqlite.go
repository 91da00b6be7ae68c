package output

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/macrolens/fdc2csv/internal/domain"
	_ "modernc.org/sqlite"
)

const foodsSchema = `
CREATE TABLE IF NOT EXISTS foods (
    position INTEGER PRIMARY KEY,
    fdc_id TEXT NOT NULL,
    source TEXT NOT NULL,
    name TEXT NOT NULL,
    weight_g REAL NOT NULL,
    volume_ml REAL,
    calories_kcal REAL NOT NULL,
    fat_g REAL NOT NULL,
    carbs_g REAL NOT NULL,
    fiber_g REAL NOT NULL,
    sugars_g REAL NOT NULL,
    protein_g REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(name);
`

// SQLiteWriter stores nutrition records in a foods table. Each Write
// replaces the table contents; position preserves output order.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter opens (or creates) the database at path.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(foodsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteWriter{db: db}, nil
}

// Close closes the database.
func (s *SQLiteWriter) Close() error {
	return s.db.Close()
}

// Write replaces the foods table with foods in a single transaction.
func (s *SQLiteWriter) Write(ctx context.Context, foods []domain.Food) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM foods`); err != nil {
		return fmt.Errorf("failed to clear foods: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO foods (position, fdc_id, source, name, weight_g, volume_ml,
            calories_kcal, fat_g, carbs_g, fiber_g, sugars_g, protein_g)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, food := range foods {
		var volume sql.NullFloat64
		if food.VolumeML != nil {
			volume = sql.NullFloat64{Float64: *food.VolumeML, Valid: true}
		}
		m := food.Macros
		_, err := stmt.ExecContext(ctx,
			i, food.FdcID, food.Source, food.Name, food.WeightG, volume,
			m.Calories, m.Fat, m.Carbs, m.Fiber, m.Sugars, m.Protein)
		if err != nil {
			return fmt.Errorf("failed to insert food %s: %w", food.FdcID, err)
		}
	}

	return tx.Commit()
}
