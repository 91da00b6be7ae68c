package usda

import (
	"testing"

	"github.com/macrolens/fdc2csv/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestDecodeDataset(t *testing.T) {
	t.Run("reads both collections in order", func(t *testing.T) {
		data := []byte(`{
			"SRLegacyFoods": [{"fdcId": 3, "description": "Cheese"}],
			"FoundationFoods": [
				{"fdcId": 1, "description": "Apple"},
				{"fdcId": 2, "description": "Bread"}
			]
		}`)

		foods, err := DecodeDataset(data)

		require.NoError(t, err)
		require.Len(t, foods, 3)
		assert.Equal(t, domain.SourceFoundation, foods[0].Source)
		assert.Equal(t, 0, foods[0].Position)
		assert.Equal(t, "Apple", *foods[0].Description)
		assert.Equal(t, 1, foods[1].Position)
		assert.Equal(t, domain.SourceSRLegacy, foods[2].Source)
		assert.Equal(t, "3", *foods[2].FdcID)
	})

	t.Run("missing collections are empty", func(t *testing.T) {
		foods, err := DecodeDataset([]byte(`{"BrandedFoods": [{"fdcId": 1}]}`))

		require.NoError(t, err)
		assert.Empty(t, foods)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := DecodeDataset([]byte(`{"FoundationFoods": [`))
		assert.ErrorIs(t, err, domain.ErrInvalidDataset)
	})

	t.Run("rejects non-object top level", func(t *testing.T) {
		_, err := DecodeDataset([]byte(`[1, 2]`))
		assert.ErrorIs(t, err, domain.ErrInvalidDataset)
	})

	t.Run("rejects non-array collection", func(t *testing.T) {
		_, err := DecodeDataset([]byte(`{"FoundationFoods": {"fdcId": 1}}`))
		assert.ErrorIs(t, err, domain.ErrInvalidDataset)
	})
}

func TestDecodeFood(t *testing.T) {
	t.Run("extracts nutrients and portions", func(t *testing.T) {
		item := gjson.Parse(`{
			"fdcId": 747447,
			"description": "Broccoli, raw",
			"foodNutrients": [
				{"nutrient": {"number": "205.2"}, "amount": 6.29},
				{"nutrient": {"number": 268}, "amount": 140}
			],
			"foodPortions": [
				{"measureUnit": {"id": 1000, "abbreviation": "cup"}, "amount": 1.0, "gramWeight": 91}
			]
		}`)

		food := DecodeFood(domain.SourceFoundation, 4, item)

		assert.Equal(t, "747447", *food.FdcID)
		assert.Equal(t, 4, food.Position)
		require.Len(t, food.Nutrients, 2)
		assert.Equal(t, "205.2", *food.Nutrients[0].Number)
		assert.InDelta(t, 6.29, *food.Nutrients[0].Amount, 1e-9)
		assert.Equal(t, "268", *food.Nutrients[1].Number)
		require.Len(t, food.Portions, 1)
		assert.Equal(t, 1000, *food.Portions[0].UnitID)
		assert.Equal(t, "cup", *food.Portions[0].Abbreviation)
		assert.Equal(t, 1.0, *food.Portions[0].Amount)
		assert.Equal(t, 91.0, *food.Portions[0].GramWeight)
	})

	t.Run("malformed fields are nil", func(t *testing.T) {
		item := gjson.Parse(`{
			"fdcId": null,
			"description": 42,
			"foodNutrients": [
				{"nutrient": {}, "amount": "3"},
				{"amount": null}
			],
			"foodPortions": [
				{"measureUnit": {"id": 1000.5}, "amount": "1", "gramWeight": true},
				"not an object"
			]
		}`)

		food := DecodeFood(domain.SourceSRLegacy, 0, item)

		assert.Nil(t, food.FdcID)
		assert.Nil(t, food.Description)
		require.Len(t, food.Nutrients, 2)
		assert.Nil(t, food.Nutrients[0].Number)
		assert.Nil(t, food.Nutrients[0].Amount)
		assert.Nil(t, food.Nutrients[1].Amount)
		require.Len(t, food.Portions, 2)
		assert.Nil(t, food.Portions[0].UnitID)
		assert.Nil(t, food.Portions[0].Abbreviation)
		assert.Nil(t, food.Portions[0].Amount)
		assert.Nil(t, food.Portions[0].GramWeight)
		assert.Nil(t, food.Portions[1].UnitID)
	})

	t.Run("missing lists stay empty", func(t *testing.T) {
		food := DecodeFood(domain.SourceFoundation, 0, gjson.Parse(`{"fdcId": 1, "description": "Water", "foodPortions": null}`))

		assert.Empty(t, food.Nutrients)
		assert.Empty(t, food.Portions)
	})
}

func TestDecodeAPIFood(t *testing.T) {
	food, err := DecodeAPIFood([]byte(`{"fdcId": 9, "dataType": "SR Legacy", "description": "Egg"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSRLegacy, food.Source)

	_, err = DecodeAPIFood([]byte(`{"fdcId": 9, "dataType": "Survey (FNDDS)"}`))
	assert.ErrorIs(t, err, domain.ErrUnsupportedDataType)

	_, err = DecodeAPIFood([]byte(`nope`))
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)
}
