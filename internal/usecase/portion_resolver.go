package usecase

import (
	"github.com/macrolens/fdc2csv/internal/domain"
)

// FDC measure unit ids for the volumetric units that can be converted to ml.
const (
	unitCup        = 1000
	unitTablespoon = 1001
	unitTeaspoon   = 1002
	unitMilliliter = 1004
)

var portionUnitMilliliters = map[int]float64{
	unitCup:        236.5875,
	unitTablespoon: 14.78672,
	unitTeaspoon:   4.928906,
	unitMilliliter: 1.0,
}

// PortionResolver chooses a food's typical serving: the largest volumetric
// portion with a known gram weight.
type PortionResolver struct {
	unitMilliliters map[int]float64
}

// NewPortionResolver creates a resolver for cup, tbsp, tsp and ml portions.
func NewPortionResolver() *PortionResolver {
	return &PortionResolver{unitMilliliters: portionUnitMilliliters}
}

// Candidate converts a portion into a PortionCandidate. It reports false when
// the unit is not volumetric or the quantity or weight is missing or not positive.
func (r *PortionResolver) Candidate(p domain.FoodPortion) (domain.PortionCandidate, bool) {
	if p.UnitID == nil || p.Abbreviation == nil || p.Amount == nil || p.GramWeight == nil {
		return domain.PortionCandidate{}, false
	}

	ml, ok := r.unitMilliliters[*p.UnitID]
	if !ok || *p.Amount <= 0 || *p.GramWeight <= 0 {
		return domain.PortionCandidate{}, false
	}

	return domain.PortionCandidate{
		VolumeML:   ml * *p.Amount,
		WeightG:    *p.GramWeight,
		Quantity:   *p.Amount,
		Descriptor: *p.Abbreviation,
	}, true
}

// Resolve returns the weight and volume of the largest candidate, each
// rounded to one decimal. Without any candidate it returns
// domain.DefaultWeightGrams and a nil volume.
func (r *PortionResolver) Resolve(portions []domain.FoodPortion) (float64, *float64) {
	var (
		best  domain.PortionCandidate
		found bool
	)
	for _, p := range portions {
		c, ok := r.Candidate(p)
		if !ok {
			continue
		}
		if !found || c.Compare(best) > 0 {
			best = c
			found = true
		}
	}

	if !found {
		return domain.DefaultWeightGrams, nil
	}

	volume := domain.RoundTenth(best.VolumeML)
	return domain.RoundTenth(best.WeightG), &volume
}
