package usecase

import (
	"fmt"

	"github.com/macrolens/fdc2csv/internal/domain"
)

// FoodAssembler builds normalized foods from decoded source records.
type FoodAssembler struct {
	portions *PortionResolver
	macros   *MacroResolver
}

// NewFoodAssembler creates an assembler from its two resolvers.
func NewFoodAssembler(portions *PortionResolver, macros *MacroResolver) *FoodAssembler {
	return &FoodAssembler{
		portions: portions,
		macros:   macros,
	}
}

// Assemble resolves the serving portion and macros for src and scales the
// macros from 100 g to the serving weight. fdcId and description are required.
func (a *FoodAssembler) Assemble(src domain.SourceFood) (domain.Food, error) {
	if src.FdcID == nil {
		return domain.Food{}, fmt.Errorf("%s food #%d: %w", src.Source, src.Position, domain.ErrMissingFdcID)
	}
	if src.Description == nil {
		return domain.Food{}, fmt.Errorf("%s food #%d (fdcId %s): %w", src.Source, src.Position, *src.FdcID, domain.ErrMissingDescription)
	}

	weight, volume := a.portions.Resolve(src.Portions)

	macros := a.macros.Resolve(src.Nutrients)
	if weight != domain.DefaultWeightGrams {
		macros = macros.Scale(weight / domain.DefaultWeightGrams)
	}

	return domain.Food{
		Source:   src.Source,
		FdcID:    *src.FdcID,
		Name:     *src.Description,
		WeightG:  weight,
		VolumeML: volume,
		Macros:   macros,
	}, nil
}
