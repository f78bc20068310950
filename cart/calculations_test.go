package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mu-waterwear/models"
	"mu-waterwear/pricing"
)

func cartOf(items ...models.CartItem) []models.CartItem {
	return items
}

func line(id, price string, quantity int) models.CartItem {
	return models.CartItem{
		ID:       id,
		Name:     "Item " + id,
		Price:    price,
		Image:    id + ".jpg",
		Quantity: quantity,
	}
}

func TestCalculateTotal(t *testing.T) {
	items := cartOf(
		line("a", "$29.99", 2),
		line("b", "$10.00", 1),
	)

	assert.Equal(t, "$69.98", CalculateTotal(items))
	assert.Equal(t, 3, CalculateItemCount(items))
	assert.InDelta(t, 69.98, CalculateSubtotal(items), 0.0001)
}

func TestCalculateTotalEmptyCart(t *testing.T) {
	assert.Equal(t, "$0.00", CalculateTotal(nil))
	assert.Equal(t, 0, CalculateItemCount(nil))
	assert.Zero(t, CalculateSubtotal(nil))
}

func TestCalculateTotalUnparsablePriceContributesZero(t *testing.T) {
	items := cartOf(
		line("a", "$10.00", 1),
		line("b", "N/A", 3),
	)

	assert.Equal(t, "$10.00", CalculateTotal(items))
	// but the broken line still counts as items
	assert.Equal(t, 4, CalculateItemCount(items))
}

func TestCalculateTotalMissingDollarSignStillParses(t *testing.T) {
	// Calculation paths are tolerant; only add-time validation demands "$"
	items := cartOf(line("a", "29.99", 1))
	assert.Equal(t, "$29.99", CalculateTotal(items))
}

func TestCalculateTax(t *testing.T) {
	assert.InDelta(t, 5.60, CalculateTax(69.98, 0.08), 0.0001)
	assert.InDelta(t, 0.08, CalculateTax(1.00, 0.08), 0.0001)
	assert.Zero(t, CalculateTax(0, 0.08))
	// rounds to cents
	assert.InDelta(t, 0.01, CalculateTax(0.10, 0.08), 0.0001)
}

func TestCalculateShipping(t *testing.T) {
	rules := pricing.DefaultRules()

	t.Run("empty cart ships free", func(t *testing.T) {
		assert.Zero(t, CalculateShipping(nil, rules))
	})

	t.Run("below threshold", func(t *testing.T) {
		items := cartOf(line("a", "$10.00", 2))
		// $8.99 base + 2 x $0.50
		assert.InDelta(t, 9.99, CalculateShipping(items, rules), 0.0001)
	})

	t.Run("one cent below threshold", func(t *testing.T) {
		items := cartOf(line("a", "$74.99", 1))
		assert.InDelta(t, 9.49, CalculateShipping(items, rules), 0.0001)
		assert.False(t, QualifiesForFreeShipping(items, rules))
		assert.InDelta(t, 0.01, AmountForFreeShipping(items, rules), 0.0001)
	})

	t.Run("at threshold", func(t *testing.T) {
		items := cartOf(line("a", "$75.00", 1))
		assert.Zero(t, CalculateShipping(items, rules))
		assert.True(t, QualifiesForFreeShipping(items, rules))
		assert.Zero(t, AmountForFreeShipping(items, rules))
	})
}

func TestCalculateGrandTotal(t *testing.T) {
	rules := pricing.DefaultRules()

	// subtotal $69.98, tax $5.60, shipping $8.99 + 3 x $0.50 = $10.49
	items := cartOf(
		line("a", "$29.99", 2),
		line("b", "$10.00", 1),
	)
	assert.Equal(t, "$86.07", CalculateGrandTotal(items, rules))
}

func TestGetCartSummary(t *testing.T) {
	rules := pricing.DefaultRules()

	t.Run("paid shipping", func(t *testing.T) {
		items := cartOf(
			line("a", "$29.99", 2),
			line("b", "$10.00", 1),
		)

		s := GetCartSummary(items, rules)
		assert.Equal(t, 3, s.ItemCount)
		assert.Equal(t, "$69.98", s.Subtotal)
		assert.InDelta(t, 69.98, s.SubtotalRaw, 0.0001)
		assert.Equal(t, "$5.60", s.Tax)
		assert.InDelta(t, 8.0, s.TaxRate, 0.0001)
		assert.Equal(t, "$10.49", s.Shipping)
		assert.Equal(t, "$75.00", s.FreeShippingThreshold)
		assert.Equal(t, "$5.02", s.FreeShippingRemaining)
		assert.Equal(t, "$86.07", s.GrandTotal)
		assert.Equal(t, "$0.00", s.Savings)
	})

	t.Run("free shipping reports savings", func(t *testing.T) {
		items := cartOf(line("a", "$40.00", 2))

		s := GetCartSummary(items, rules)
		assert.Equal(t, "$0.00", s.Shipping)
		assert.Equal(t, "$0.00", s.FreeShippingRemaining)
		// waived: $8.99 base + 2 x $0.50
		assert.Equal(t, "$9.99", s.Savings)
	})

	t.Run("empty cart", func(t *testing.T) {
		s := GetCartSummary(nil, rules)
		assert.Zero(t, s.ItemCount)
		assert.Equal(t, "$0.00", s.Subtotal)
		assert.Equal(t, "$0.00", s.GrandTotal)
		assert.Equal(t, "$0.00", s.Savings)
	})
}
