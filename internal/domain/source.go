package domain

// Collection labels for the two supported FDC data sets.
const (
	SourceFoundation = "Foundation"
	SourceSRLegacy   = "SR Legacy"
)

// FoodNutrient is one nutrient measurement as reported by the source data set.
// Nil fields were absent or had the wrong JSON type.
type FoodNutrient struct {
	Number *string  // nutrient.number, e.g. "203" or "205.2"
	Amount *float64 // amount per 100 g
}

// FoodPortion is one reported serving portion. Nil fields were absent or malformed.
type FoodPortion struct {
	UnitID       *int     // measureUnit.id
	Abbreviation *string  // measureUnit.abbreviation
	Amount       *float64 // number of units
	GramWeight   *float64
}

// SourceFood is a single food object from an FDC data set with every field
// checked for presence and type, but not yet validated.
type SourceFood struct {
	Source      string // collection label
	Position    int    // index within its collection
	FdcID       *string
	Description *string
	Nutrients   []FoodNutrient
	Portions    []FoodPortion
}
