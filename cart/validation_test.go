package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mu-waterwear/models"
)

func validItem() models.CartItem {
	return models.CartItem{
		ID:       "board-shorts-1",
		Name:     "Board Shorts",
		Price:    "$34.99",
		Size:     "M",
		Image:    "https://cdn.example.com/board-shorts.jpg",
		Quantity: 1,
	}
}

func TestValidateCartItem(t *testing.T) {
	assert.True(t, ValidateCartItem(validItem()))

	missingID := validItem()
	missingID.ID = "  "
	assert.False(t, ValidateCartItem(missingID))

	missingName := validItem()
	missingName.Name = ""
	assert.False(t, ValidateCartItem(missingName))

	missingPrice := validItem()
	missingPrice.Price = ""
	assert.False(t, ValidateCartItem(missingPrice))

	missingImage := validItem()
	missingImage.Image = ""
	assert.False(t, ValidateCartItem(missingImage))

	// Price format is not this layer's concern
	badPrice := validItem()
	badPrice.Price = "not a price"
	assert.True(t, ValidateCartItem(badPrice))
}

func TestValidateQuantity(t *testing.T) {
	assert.True(t, ValidateQuantity(0)) // zero means remove
	assert.True(t, ValidateQuantity(1))
	assert.True(t, ValidateQuantity(99))
	assert.False(t, ValidateQuantity(-1))
}

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestValidateCartData(t *testing.T) {
	t.Run("valid cart", func(t *testing.T) {
		v := ValidateCartData(decode(t, `[{"id":"a","name":"Tee","price":"$19.99","quantity":2}]`))
		assert.True(t, v.IsValid)
		assert.Empty(t, v.Errors)
	})

	t.Run("not an array", func(t *testing.T) {
		v := ValidateCartData(decode(t, `{"id":"a"}`))
		assert.False(t, v.IsValid)
		assert.Equal(t, []string{"cart data is not an array"}, v.Errors)
	})

	t.Run("empty array is valid", func(t *testing.T) {
		v := ValidateCartData(decode(t, `[]`))
		assert.True(t, v.IsValid)
	})

	t.Run("collects every violation with its index", func(t *testing.T) {
		v := ValidateCartData(decode(t, `[
			{"id":"a","name":"Tee","price":"$19.99","quantity":1},
			{"name":"Hat","price":"$14.99","quantity":1},
			{"id":"c","name":"Cap","price":"$9.99","quantity":0},
			"garbage"
		]`))
		assert.False(t, v.IsValid)
		assert.Contains(t, v.Errors, "item 1: missing or invalid id")
		assert.Contains(t, v.Errors, "item 2: invalid quantity")
		assert.Contains(t, v.Errors, "item 3: not an object")
	})

	t.Run("fractional quantity rejected", func(t *testing.T) {
		v := ValidateCartData(decode(t, `[{"id":"a","name":"Tee","price":"$19.99","quantity":1.5}]`))
		assert.False(t, v.IsValid)
		assert.Contains(t, v.Errors, "item 0: invalid quantity")
	})

	t.Run("numeric price rejected", func(t *testing.T) {
		v := ValidateCartData(decode(t, `[{"id":"a","name":"Tee","price":19.99,"quantity":1}]`))
		assert.False(t, v.IsValid)
		assert.Contains(t, v.Errors, "item 0: missing or invalid price")
	})
}

func TestSanitizeCartData(t *testing.T) {
	raw := decode(t, `[
		{"id":"a","name":"Tee","price":"$19.99","size":"M","image":"tee.jpg","quantity":2},
		{"name":"Hat","price":"$14.99","quantity":1},
		{"id":"c","name":"Cap","price":"$9.99","quantity":-3},
		"garbage",
		{"id":"d","name":"Rash Guard","price":"$44.99","quantity":1}
	]`).([]interface{})

	items := SanitizeCartData(raw)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "M", items[0].Size)
	assert.Equal(t, "d", items[1].ID)
}

func TestSanitizeCartDataEmpty(t *testing.T) {
	items := SanitizeCartData(nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
