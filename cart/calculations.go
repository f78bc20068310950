package cart

import (
	"log"
	"math"

	"mu-waterwear/models"
	"mu-waterwear/pricing"
	"mu-waterwear/utils"
)

// DefaultTaxRate is the sales tax rate applied to cart summaries
const DefaultTaxRate = 0.08

// All functions in this file are pure arithmetic over a cart snapshot:
// no persistence, no mutation. Internally amounts are integer cents;
// formatted strings appear only at the presentation edge. An unparsable
// price contributes 0 to totals (with a logged warning) instead of
// poisoning the sum.

// subtotalCents sums price * quantity per line, in cents
func subtotalCents(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		cents, ok := utils.ParsePriceCents(item.Price)
		if !ok {
			log.Printf("⚠️ Unparsable price %q for cart item %s, treating as 0", item.Price, item.ID)
			continue
		}
		if item.Quantity < 0 {
			continue
		}
		total += cents * int64(item.Quantity)
	}
	return total
}

// CalculateSubtotal returns the cart subtotal in dollars
func CalculateSubtotal(items []models.CartItem) float64 {
	return utils.CentsToDollars(subtotalCents(items))
}

// CalculateTotal returns the cart subtotal formatted as "$X.XX"
func CalculateTotal(items []models.CartItem) string {
	return utils.FormatUSD(subtotalCents(items))
}

// CalculateItemCount returns the sum of quantities (not the line count)
func CalculateItemCount(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		if item.Quantity > 0 {
			count += item.Quantity
		}
	}
	return count
}

// CalculateTax computes sales tax on a dollar subtotal, rounded to cents
func CalculateTax(subtotal float64, rate float64) float64 {
	return math.Round(subtotal*rate*100) / 100
}

// CalculateShipping computes the shipping cost in dollars for a cart.
// Zero when the subtotal reaches the free-shipping threshold, zero for an
// empty cart, otherwise base cost plus a per-item charge.
func CalculateShipping(items []models.CartItem, rules pricing.Rules) float64 {
	if len(items) == 0 {
		return 0
	}

	if subtotalCents(items) >= rules.FreeShippingThreshold {
		return 0
	}

	cents := rules.BaseShippingCost + int64(CalculateItemCount(items))*rules.PerItemCost
	return utils.CentsToDollars(cents)
}

// QualifiesForFreeShipping reports whether the cart subtotal has reached
// the free-shipping threshold
func QualifiesForFreeShipping(items []models.CartItem, rules pricing.Rules) bool {
	return subtotalCents(items) >= rules.FreeShippingThreshold
}

// AmountForFreeShipping returns how many dollars short of free shipping
// the cart is; zero once it qualifies
func AmountForFreeShipping(items []models.CartItem, rules pricing.Rules) float64 {
	remaining := rules.FreeShippingThreshold - subtotalCents(items)
	if remaining <= 0 {
		return 0
	}
	return utils.CentsToDollars(remaining)
}

// CalculateGrandTotal returns subtotal + tax + shipping formatted as "$X.XX"
func CalculateGrandTotal(items []models.CartItem, rules pricing.Rules) string {
	subtotal := subtotalCents(items)
	tax := utils.DollarsToCents(CalculateTax(utils.CentsToDollars(subtotal), DefaultTaxRate))
	shipping := utils.DollarsToCents(CalculateShipping(items, rules))
	return utils.FormatUSD(subtotal + tax + shipping)
}

// GetCartSummary assembles the full price breakdown for a cart snapshot
func GetCartSummary(items []models.CartItem, rules pricing.Rules) models.CartSummary {
	subtotal := subtotalCents(items)
	count := CalculateItemCount(items)

	taxRaw := CalculateTax(utils.CentsToDollars(subtotal), DefaultTaxRate)
	tax := utils.DollarsToCents(taxRaw)

	shippingRaw := CalculateShipping(items, rules)
	shipping := utils.DollarsToCents(shippingRaw)

	// Savings reports the shipping amount waived when free shipping applied
	var savings int64
	if len(items) > 0 && subtotal >= rules.FreeShippingThreshold {
		savings = rules.BaseShippingCost + int64(count)*rules.PerItemCost
	}

	var remaining int64
	if r := rules.FreeShippingThreshold - subtotal; r > 0 {
		remaining = r
	}

	grand := subtotal + tax + shipping

	return models.CartSummary{
		ItemCount:             count,
		Subtotal:              utils.FormatUSD(subtotal),
		SubtotalRaw:           utils.CentsToDollars(subtotal),
		Tax:                   utils.FormatUSD(tax),
		TaxRaw:                taxRaw,
		TaxRate:               DefaultTaxRate * 100,
		Shipping:              utils.FormatUSD(shipping),
		ShippingRaw:           shippingRaw,
		FreeShippingThreshold: utils.FormatUSD(rules.FreeShippingThreshold),
		FreeShippingRemaining: utils.FormatUSD(remaining),
		GrandTotal:            utils.FormatUSD(grand),
		GrandTotalRaw:         utils.CentsToDollars(grand),
		Savings:               utils.FormatUSD(savings),
	}
}
