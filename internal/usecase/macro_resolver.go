package usecase

import (
	"strconv"

	"github.com/macrolens/fdc2csv/internal/domain"
	"go.uber.org/zap"
)

// candidate is one measurement competing for a category.
type candidate struct {
	priority int
	amount   float64
}

// less orders by priority, then by amount, so the winner does not depend on
// input order.
func (c candidate) less(other candidate) bool {
	if c.priority != other.priority {
		return c.priority < other.priority
	}
	return c.amount < other.amount
}

// MacroResolver picks one authoritative value per macro category from a
// food's nutrient measurements.
type MacroResolver struct {
	table  NutrientTable
	logger *zap.Logger
}

// NewMacroResolver creates a resolver backed by table.
func NewMacroResolver(table NutrientTable, logger *zap.Logger) *MacroResolver {
	return &MacroResolver{
		table:  table,
		logger: logger,
	}
}

// Resolve returns macros per 100 g. Every category starts with a zero-valued
// sentinel, so categories without a known measurement resolve to 0.0. When
// calories resolve to exactly zero they are estimated from the Atwater
// general factors instead; a measured zero is indistinguishable from a
// missing value here.
func (r *MacroResolver) Resolve(nutrients []domain.FoodNutrient) domain.Macros {
	best := make(map[domain.NutrientCategory]candidate, len(domain.NutrientCategories))
	for _, category := range domain.NutrientCategories {
		best[category] = candidate{priority: sentinelPriority, amount: 0.0}
	}

	for i, n := range nutrients {
		if n.Number == nil || n.Amount == nil {
			r.logger.Debug("skipping incomplete nutrient", zap.Int("index", i))
			continue
		}

		amount := *n.Amount
		if isKilojouleNumber(*n.Number) {
			amount *= kilojoulesToKcal
		}

		descriptor, ok := r.table.Lookup(*n.Number)
		if !ok {
			continue
		}

		c := candidate{priority: descriptor.Priority, amount: amount}
		if c.less(best[descriptor.Category]) {
			best[descriptor.Category] = c
		}
	}

	macros := domain.Macros{
		Calories: best[domain.CategoryCalories].amount,
		Fat:      best[domain.CategoryFat].amount,
		Carbs:    best[domain.CategoryCarbs].amount,
		Fiber:    best[domain.CategoryFiber].amount,
		Sugars:   best[domain.CategorySugars].amount,
		Protein:  best[domain.CategoryProtein].amount,
	}
	if macros.Calories == 0.0 {
		macros.Calories = AtwaterCalories(macros.Protein, macros.Carbs, macros.Fat)
	}

	return macros.Rounded()
}

// AtwaterCalories estimates kcal with the general factors 4/4/9.
func AtwaterCalories(protein, carbs, fat float64) float64 {
	return protein*4 + carbs*4 + fat*9
}

func isKilojouleNumber(number string) bool {
	v, err := strconv.ParseFloat(number, 64)
	return err == nil && v == kilojouleNutrientNumber
}
