package domain

import (
	"cmp"
	"fmt"
	"strconv"
)

// DefaultWeightGrams is the basis used when a food has no usable volumetric portion.
const DefaultWeightGrams = 100.0

// NutrientCategory is one of the six macro-nutrient buckets.
type NutrientCategory int

const (
	CategoryCalories NutrientCategory = iota + 1
	CategoryFat
	CategoryCarbs
	CategoryFiber
	CategorySugars
	CategoryProtein
)

// NutrientCategories lists every category in output order.
var NutrientCategories = []NutrientCategory{
	CategoryCalories,
	CategoryFat,
	CategoryCarbs,
	CategoryFiber,
	CategorySugars,
	CategoryProtein,
}

func (c NutrientCategory) String() string {
	switch c {
	case CategoryCalories:
		return "calories"
	case CategoryFat:
		return "fat"
	case CategoryCarbs:
		return "carbs"
	case CategoryFiber:
		return "fiber"
	case CategorySugars:
		return "sugars"
	case CategoryProtein:
		return "protein"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// NutrientDescriptor describes how a nutrient number maps onto a macro category.
// Lower Priority is more authoritative.
type NutrientDescriptor struct {
	Name     string
	Category NutrientCategory
	Priority int
}

// Macros contains the six resolved macro-nutrient amounts
type Macros struct {
	Calories float64 `json:"calories_kcal"`
	Fat      float64 `json:"fat_g"`
	Carbs    float64 `json:"carbs_g"`
	Fiber    float64 `json:"fiber_g"`
	Sugars   float64 `json:"sugars_g"`
	Protein  float64 `json:"protein_g"`
}

// Get returns the amount for a category.
func (m Macros) Get(c NutrientCategory) float64 {
	switch c {
	case CategoryCalories:
		return m.Calories
	case CategoryFat:
		return m.Fat
	case CategoryCarbs:
		return m.Carbs
	case CategoryFiber:
		return m.Fiber
	case CategorySugars:
		return m.Sugars
	case CategoryProtein:
		return m.Protein
	}
	return 0
}

// Rounded returns a copy with every field rounded to one decimal place.
func (m Macros) Rounded() Macros {
	return Macros{
		Calories: RoundTenth(m.Calories),
		Fat:      RoundTenth(m.Fat),
		Carbs:    RoundTenth(m.Carbs),
		Fiber:    RoundTenth(m.Fiber),
		Sugars:   RoundTenth(m.Sugars),
		Protein:  RoundTenth(m.Protein),
	}
}

// Scale multiplies every field by factor and rounds the results.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Calories: m.Calories * factor,
		Fat:      m.Fat * factor,
		Carbs:    m.Carbs * factor,
		Fiber:    m.Fiber * factor,
		Sugars:   m.Sugars * factor,
		Protein:  m.Protein * factor,
	}.Rounded()
}

// Values returns the amounts in output column order.
func (m Macros) Values() []float64 {
	return []float64{m.Calories, m.Fat, m.Carbs, m.Fiber, m.Sugars, m.Protein}
}

// PortionCandidate is a volumetric serving with a known gram weight.
// Candidates order by VolumeML, then WeightG, Quantity and Descriptor.
type PortionCandidate struct {
	VolumeML   float64
	WeightG    float64
	Quantity   float64
	Descriptor string
}

// Compare orders two candidates field by field.
func (p PortionCandidate) Compare(other PortionCandidate) int {
	if c := cmp.Compare(p.VolumeML, other.VolumeML); c != 0 {
		return c
	}
	if c := cmp.Compare(p.WeightG, other.WeightG); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Quantity, other.Quantity); c != 0 {
		return c
	}
	return cmp.Compare(p.Descriptor, other.Descriptor)
}

// Food is one normalized food, with macros scaled to WeightG.
type Food struct {
	Source   string
	FdcID    string
	Name     string
	WeightG  float64
	VolumeML *float64 // nil when no volumetric portion was found
	Macros   Macros
}

func (f Food) String() string {
	volume := "None"
	if f.VolumeML != nil {
		volume = FormatTenth(*f.VolumeML)
	}
	return fmt.Sprintf("Food(source=%q, fdc_id=%s, name=%q, weight=%s, volume=%s, macros=%+v)",
		f.Source, f.FdcID, f.Name, FormatTenth(f.WeightG), volume, f.Macros)
}

// NutritionRecord projects the food onto the output columns.
func (f Food) NutritionRecord() NutritionRecord {
	return NutritionRecord{
		Name:     f.Name,
		WeightG:  f.WeightG,
		VolumeML: f.VolumeML,
		Macros:   f.Macros,
	}
}

// RecordHeaders are the output column names, in order.
var RecordHeaders = []string{
	"name", "weight_g", "volume_ml",
	"calories_kcal", "fat_g", "carbs_g", "fiber_g", "sugars_g", "protein_g",
}

// NutritionRecord is the flat output row for one food
type NutritionRecord struct {
	Name     string   `json:"name"`
	WeightG  float64  `json:"weight_g"`
	VolumeML *float64 `json:"volume_ml"`
	Macros
}

// Fields renders the record as strings matching RecordHeaders. An absent
// volume renders as an empty field.
func (r NutritionRecord) Fields() []string {
	fields := make([]string, 0, len(RecordHeaders))
	fields = append(fields, r.Name, FormatTenth(r.WeightG))
	if r.VolumeML != nil {
		fields = append(fields, FormatTenth(*r.VolumeML))
	} else {
		fields = append(fields, "")
	}
	for _, v := range r.Macros.Values() {
		fields = append(fields, FormatTenth(v))
	}
	return fields
}

// RoundTenth rounds to one decimal place. Rounding works on the exact binary
// value of v, and exact halves go to even (0.25 -> 0.2).
func RoundTenth(v float64) float64 {
	r, err := strconv.ParseFloat(FormatTenth(v), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatTenth formats v with exactly one decimal place.
func FormatTenth(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
