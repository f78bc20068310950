package cart

import (
	"fmt"
	"math"
	"strings"

	"mu-waterwear/models"
)

// ValidateCartItem reports whether an item has the shape required to enter
// the cart: id, name, price and image must all be non-empty. Price format
// is deliberately not checked here; the orchestration layer does that with
// a descriptive error on add.
func ValidateCartItem(item models.CartItem) bool {
	if strings.TrimSpace(item.ID) == "" {
		return false
	}
	if strings.TrimSpace(item.Name) == "" {
		return false
	}
	if strings.TrimSpace(item.Price) == "" {
		return false
	}
	if strings.TrimSpace(item.Image) == "" {
		return false
	}
	return true
}

// ValidateQuantity reports whether q is usable as a quantity argument.
// Zero is permitted: callers treat it as "remove".
func ValidateQuantity(q int) bool {
	return q >= 0
}

// ValidateCartData validates an arbitrary deserialized value as a candidate
// cart. The value must be an array of objects with string id/name/price and
// a positive numeric quantity. One index-labeled error is collected per
// violation; validation does not stop at the first failure.
func ValidateCartData(raw interface{}) models.CartDataValidation {
	arr, ok := raw.([]interface{})
	if !ok {
		return models.CartDataValidation{
			IsValid: false,
			Errors:  []string{"cart data is not an array"},
		}
	}

	var errs []string
	for i, el := range arr {
		obj, ok := el.(map[string]interface{})
		if !ok {
			errs = append(errs, fmt.Sprintf("item %d: not an object", i))
			continue
		}

		for _, field := range []string{"id", "name", "price"} {
			if s, ok := obj[field].(string); !ok || strings.TrimSpace(s) == "" {
				errs = append(errs, fmt.Sprintf("item %d: missing or invalid %s", i, field))
			}
		}

		// JSON numbers decode as float64
		q, ok := obj["quantity"].(float64)
		if !ok || q <= 0 || q != math.Trunc(q) {
			errs = append(errs, fmt.Sprintf("item %d: invalid quantity", i))
		}
	}

	return models.CartDataValidation{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// SanitizeCartData converts a deserialized array into cart items, dropping
// any element that fails the same shape checks ValidateCartData applies.
// This is the recovery path for partially corrupt persisted data; it never
// fails, it only filters.
func SanitizeCartData(raw []interface{}) []models.CartItem {
	items := []models.CartItem{}

	for _, el := range raw {
		obj, ok := el.(map[string]interface{})
		if !ok {
			continue
		}

		id, _ := obj["id"].(string)
		name, _ := obj["name"].(string)
		price, _ := obj["price"].(string)
		if strings.TrimSpace(id) == "" || strings.TrimSpace(name) == "" || strings.TrimSpace(price) == "" {
			continue
		}

		q, ok := obj["quantity"].(float64)
		if !ok || q <= 0 || q != math.Trunc(q) {
			continue
		}

		size, _ := obj["size"].(string)
		image, _ := obj["image"].(string)

		items = append(items, models.CartItem{
			ID:       id,
			Name:     name,
			Price:    price,
			Size:     size,
			Image:    image,
			Quantity: int(q),
		})
	}

	return items
}
