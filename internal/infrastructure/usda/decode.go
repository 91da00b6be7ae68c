package usda

import (
	"fmt"
	"math"

	"github.com/macrolens/fdc2csv/internal/domain"
	"github.com/tidwall/gjson"
)

// datasetCollections are the top-level keys read from a data set, in output order.
var datasetCollections = []struct {
	key   string
	label string
}{
	{key: "FoundationFoods", label: domain.SourceFoundation},
	{key: "SRLegacyFoods", label: domain.SourceSRLegacy},
}

// DecodeDataset reads the Foundation and SR Legacy collections from a full
// FDC JSON download. Missing collections are treated as empty.
func DecodeDataset(data []byte) ([]domain.SourceFood, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", domain.ErrInvalidDataset)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", domain.ErrInvalidDataset)
	}

	var foods []domain.SourceFood
	for _, col := range datasetCollections {
		items := root.Get(col.key)
		if !items.Exists() {
			continue
		}
		if !items.IsArray() {
			return nil, fmt.Errorf("%w: %s is not an array", domain.ErrInvalidDataset, col.key)
		}

		position := 0
		items.ForEach(func(_, item gjson.Result) bool {
			foods = append(foods, DecodeFood(col.label, position, item))
			position++
			return true
		})
	}

	return foods, nil
}

// DecodeAPIFood decodes a single food as returned by the /v1/food endpoint.
// The collection label comes from its dataType.
func DecodeAPIFood(data []byte) (*domain.SourceFood, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", domain.ErrInvalidDataset)
	}

	item := gjson.ParseBytes(data)
	dataType := item.Get("dataType").String()
	switch dataType {
	case domain.SourceFoundation, domain.SourceSRLegacy:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedDataType, dataType)
	}

	food := DecodeFood(dataType, 0, item)
	return &food, nil
}

// DecodeFood extracts the fields used for conversion from one food object.
// It never fails; anything missing or of the wrong type is left nil.
func DecodeFood(source string, position int, item gjson.Result) domain.SourceFood {
	food := domain.SourceFood{
		Source:   source,
		Position: position,
	}

	if id := item.Get("fdcId"); id.Exists() && id.Type != gjson.Null {
		s := id.String()
		food.FdcID = &s
	}
	if desc := item.Get("description"); desc.Type == gjson.String {
		s := desc.String()
		food.Description = &s
	}

	if nutrients := item.Get("foodNutrients"); nutrients.IsArray() {
		for _, n := range nutrients.Array() {
			food.Nutrients = append(food.Nutrients, domain.FoodNutrient{
				Number: stringField(n.Get("nutrient.number")),
				Amount: numberField(n.Get("amount")),
			})
		}
	}

	if portions := item.Get("foodPortions"); portions.IsArray() {
		for _, p := range portions.Array() {
			food.Portions = append(food.Portions, domain.FoodPortion{
				UnitID:       intField(p.Get("measureUnit.id")),
				Abbreviation: stringField(p.Get("measureUnit.abbreviation")),
				Amount:       numberField(p.Get("amount")),
				GramWeight:   numberField(p.Get("gramWeight")),
			})
		}
	}

	return food
}

// stringField accepts JSON strings and numbers; nutrient numbers appear as both.
func stringField(r gjson.Result) *string {
	if r.Type != gjson.String && r.Type != gjson.Number {
		return nil
	}
	s := r.String()
	return &s
}

func numberField(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Float()
	return &v
}

func intField(r gjson.Result) *int {
	if r.Type != gjson.Number || r.Num != math.Trunc(r.Num) {
		return nil
	}
	v := int(r.Num)
	return &v
}
