package usecase

import (
	"maps"

	"github.com/macrolens/fdc2csv/internal/domain"
)

const (
	// kilojouleNutrientNumber is FDC nutrient 268, energy reported in kJ.
	kilojouleNutrientNumber = 268
	kilojoulesToKcal        = 0.239

	// sentinelPriority loses to every real entry in the table.
	sentinelPriority = 10
)

// NutrientTable maps FDC nutrient numbers onto macro categories. It is
// read-only once built and safe to share between goroutines.
type NutrientTable struct {
	byNumber map[string]domain.NutrientDescriptor
}

// NewNutrientTable copies entries into a new table.
func NewNutrientTable(entries map[string]domain.NutrientDescriptor) NutrientTable {
	return NutrientTable{byNumber: maps.Clone(entries)}
}

// DefaultNutrientTable prefers the newer lab methods within each category,
// e.g. fiber by AOAC 2011.25 over AOAC 991.43.
func DefaultNutrientTable() NutrientTable {
	return NewNutrientTable(map[string]domain.NutrientDescriptor{
		"203":   {Name: "protein", Category: domain.CategoryProtein, Priority: 1},
		"204":   {Name: "total_lipids", Category: domain.CategoryFat, Priority: 1},
		"298":   {Name: "nlea_fat", Category: domain.CategoryFat, Priority: 2},
		"205":   {Name: "carbs_by_difference", Category: domain.CategoryCarbs, Priority: 1},
		"205.2": {Name: "carbs_by_summation", Category: domain.CategoryCarbs, Priority: 2},
		"291":   {Name: "fiber_aoac_991_43", Category: domain.CategoryFiber, Priority: 2},
		"293":   {Name: "fiber_aoac_2011_25", Category: domain.CategoryFiber, Priority: 1},
		"269.3": {Name: "total_sugars", Category: domain.CategorySugars, Priority: 1},
		"269":   {Name: "nlea_sugars", Category: domain.CategorySugars, Priority: 2},
		"208":   {Name: "cals_kcal", Category: domain.CategoryCalories, Priority: 1},
		"268":   {Name: "cals_from_kJ", Category: domain.CategoryCalories, Priority: 2},
		"957":   {Name: "cals_atwater_general", Category: domain.CategoryCalories, Priority: 3},
		"958":   {Name: "cals_atwater_specific", Category: domain.CategoryCalories, Priority: 4},
	})
}

// Lookup returns the descriptor for a nutrient number.
func (t NutrientTable) Lookup(number string) (domain.NutrientDescriptor, bool) {
	d, ok := t.byNumber[number]
	return d, ok
}

// Len returns the number of known nutrients.
func (t NutrientTable) Len() int {
	return len(t.byNumber)
}
