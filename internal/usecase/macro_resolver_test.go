package usecase

import (
	"testing"

	"github.com/macrolens/fdc2csv/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.openly.dev/pointy"
	"go.uber.org/zap"
)

func nutrient(number string, amount float64) domain.FoodNutrient {
	return domain.FoodNutrient{Number: pointy.String(number), Amount: pointy.Float64(amount)}
}

func newTestMacroResolver() *MacroResolver {
	return NewMacroResolver(DefaultNutrientTable(), zap.NewNop())
}

func TestDefaultNutrientTable(t *testing.T) {
	table := DefaultNutrientTable()

	assert.Equal(t, 13, table.Len())

	fiberNew, ok := table.Lookup("293")
	assert.True(t, ok)
	fiberOld, ok := table.Lookup("291")
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryFiber, fiberNew.Category)
	assert.Less(t, fiberNew.Priority, fiberOld.Priority)

	for _, number := range []string{"203", "204", "298", "205", "205.2", "291", "293", "269.3", "269", "208", "268", "957", "958"} {
		d, ok := table.Lookup(number)
		assert.True(t, ok, number)
		assert.Less(t, d.Priority, sentinelPriority, number)
	}

	_, ok = table.Lookup("301")
	assert.False(t, ok)
}

func TestNewNutrientTable_CopiesEntries(t *testing.T) {
	entries := map[string]domain.NutrientDescriptor{
		"1": {Name: "x", Category: domain.CategoryFat, Priority: 1},
	}
	table := NewNutrientTable(entries)
	delete(entries, "1")

	_, ok := table.Lookup("1")
	assert.True(t, ok)
}

func TestMacroResolver_PriorityResolution(t *testing.T) {
	tests := []struct {
		name      string
		nutrients []domain.FoodNutrient
		want      float64
	}{
		{
			name:      "rank 1 fiber after rank 2",
			nutrients: []domain.FoodNutrient{nutrient("291", 3.0), nutrient("293", 4.2)},
			want:      4.2,
		},
		{
			name:      "rank 1 fiber before rank 2",
			nutrients: []domain.FoodNutrient{nutrient("293", 4.2), nutrient("291", 3.0)},
			want:      4.2,
		},
		{
			name:      "only rank 2 fiber",
			nutrients: []domain.FoodNutrient{nutrient("291", 3.0)},
			want:      3.0,
		},
		{
			name:      "equal priority keeps the smaller amount",
			nutrients: []domain.FoodNutrient{nutrient("293", 5.0), nutrient("293", 4.0)},
			want:      4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestMacroResolver().Resolve(tt.nutrients)
			assert.Equal(t, tt.want, got.Fiber)
		})
	}
}

func TestMacroResolver_CaloriesPriority(t *testing.T) {
	got := newTestMacroResolver().Resolve([]domain.FoodNutrient{
		nutrient("958", 70),
		nutrient("957", 65),
		nutrient("208", 61),
	})
	assert.Equal(t, 61.0, got.Calories)

	got = newTestMacroResolver().Resolve([]domain.FoodNutrient{
		nutrient("958", 70),
		nutrient("957", 65),
	})
	assert.Equal(t, 65.0, got.Calories)
}

func TestMacroResolver_NoMeasurements(t *testing.T) {
	got := newTestMacroResolver().Resolve(nil)

	assert.Equal(t, domain.Macros{}, got)
}

func TestMacroResolver_AtwaterFallback(t *testing.T) {
	got := newTestMacroResolver().Resolve([]domain.FoodNutrient{
		nutrient("203", 10.0),
		nutrient("204", 5.0),
		nutrient("205", 20.0),
	})

	assert.Equal(t, 165.0, got.Calories)
	assert.Equal(t, 10.0, got.Protein)
	assert.Equal(t, 5.0, got.Fat)
	assert.Equal(t, 20.0, got.Carbs)
}

func TestMacroResolver_MeasuredZeroCaloriesUsesAtwater(t *testing.T) {
	got := newTestMacroResolver().Resolve([]domain.FoodNutrient{
		nutrient("208", 0),
		nutrient("203", 1.0),
	})

	assert.Equal(t, 4.0, got.Calories)
}

func TestMacroResolver_KilojouleConversion(t *testing.T) {
	got := newTestMacroResolver().Resolve([]domain.FoodNutrient{nutrient("268", 1000)})
	assert.Equal(t, 239.0, got.Calories)

	// kcal measurement still outranks the converted kJ value
	got = newTestMacroResolver().Resolve([]domain.FoodNutrient{nutrient("268", 1000), nutrient("208", 250)})
	assert.Equal(t, 250.0, got.Calories)
}

func TestMacroResolver_SkipsBadMeasurements(t *testing.T) {
	got := newTestMacroResolver().Resolve([]domain.FoodNutrient{
		{Number: nil, Amount: pointy.Float64(99)},
		{Number: pointy.String("203"), Amount: nil},
		nutrient("301", 120), // calcium, not a macro
		nutrient("203", 3.3),
	})

	assert.Equal(t, 3.3, got.Protein)
	assert.Equal(t, 13.2, got.Calories)
}

func TestMacroResolver_Rounding(t *testing.T) {
	got := newTestMacroResolver().Resolve([]domain.FoodNutrient{
		nutrient("208", 61.04),
		nutrient("204", 3.25),
		nutrient("205", 4.66),
	})

	assert.Equal(t, 61.0, got.Calories)
	assert.Equal(t, 3.2, got.Fat)
	assert.Equal(t, 4.7, got.Carbs)
}

func TestMacroResolver_Deterministic(t *testing.T) {
	nutrients := []domain.FoodNutrient{
		nutrient("298", 3.1), nutrient("204", 3.27), nutrient("205.2", 11.1),
		nutrient("205", 12.3), nutrient("269", 5.5), nutrient("269.3", 5.2),
	}
	reversed := make([]domain.FoodNutrient, len(nutrients))
	for i, n := range nutrients {
		reversed[len(nutrients)-1-i] = n
	}

	r := newTestMacroResolver()
	first := r.Resolve(nutrients)
	for j := 0; j < 5; j++ {
		assert.Equal(t, first, r.Resolve(nutrients))
		assert.Equal(t, first, r.Resolve(reversed))
	}
	assert.Equal(t, 3.3, first.Fat)
	assert.Equal(t, 12.3, first.Carbs)
	assert.Equal(t, 5.2, first.Sugars)
}

func TestMacroResolver_CustomTable(t *testing.T) {
	table := NewNutrientTable(map[string]domain.NutrientDescriptor{
		"1003": {Name: "protein", Category: domain.CategoryProtein, Priority: 1},
	})
	r := NewMacroResolver(table, zap.NewNop())

	got := r.Resolve([]domain.FoodNutrient{nutrient("1003", 2.5), nutrient("203", 9)})

	assert.Equal(t, 2.5, got.Protein)
	assert.Equal(t, 10.0, got.Calories)
}

func TestAtwaterCalories(t *testing.T) {
	assert.Equal(t, 165.0, AtwaterCalories(10, 20, 5))
	assert.Equal(t, 0.0, AtwaterCalories(0, 0, 0))
}
