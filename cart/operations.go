package cart

import (
	"context"
	"fmt"
	"log"

	"mu-waterwear/models"
)

// Operations is the orchestration layer for one cart: it validates input,
// applies the mutation to an in-memory snapshot, persists through Storage
// and returns a uniform result envelope. It never returns a Go error or
// lets a panic escape; every failure surfaces as a CartError inside the
// envelope.
//
// Mutations are not serialized: each call works from the snapshot its
// caller passed in and the last write to storage wins. Overlapping calls
// against the same stale snapshot can lose an increment; that is the
// accepted model for a single shopper's cart.
type Operations struct {
	storage *Storage
	rules   models.CartValidationRules
}

// NewOperations creates the orchestration layer over the given storage
func NewOperations(storage *Storage) *Operations {
	return &Operations{
		storage: storage,
		rules:   models.DefaultValidationRules(),
	}
}

// Storage exposes the underlying cart storage (e.g. for external
// collaborators that clear the cart after checkout)
func (o *Operations) Storage() *Storage {
	return o.storage
}

// recoverTo converts an unexpected panic into an unknown-type error
// envelope so the caller never sees an unhandled failure from this layer
func (o *Operations) recoverTo(result *models.CartOperationResult, fallback string) {
	if r := recover(); r != nil {
		log.Printf("❌ Cart operation panic: %v", r)
		*result = models.CartOperationResult{
			Success: false,
			Error:   models.NewCartError(models.CartErrorUnknown, fallback),
		}
	}
}

func failure(errType models.CartErrorType, message string) models.CartOperationResult {
	return models.CartOperationResult{
		Success: false,
		Error:   models.NewCartError(errType, message),
	}
}

func success(items []models.CartItem) models.CartOperationResult {
	return models.CartOperationResult{
		Success: true,
		Items:   items,
	}
}

// findLine returns the index of the line matching (id, size), or -1
func findLine(items []models.CartItem, id, size string) int {
	for i := range items {
		if items[i].ID == id && items[i].Size == size {
			return i
		}
	}
	return -1
}

// findLineByID returns the index of the first line matching id alone, or -1
func findLineByID(items []models.CartItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneItems copies a cart snapshot so a failed persist never leaves the
// caller holding a partially-applied sequence
func cloneItems(items []models.CartItem) []models.CartItem {
	updated := make([]models.CartItem, len(items))
	copy(updated, items)
	return updated
}

// AddItem adds newItem to the cart. A line matching (id, size) is
// incremented by one, capped at the max quantity; otherwise the item is
// appended with quantity 1.
func (o *Operations) AddItem(ctx context.Context, items []models.CartItem, newItem models.CartItem) (result models.CartOperationResult) {
	defer o.recoverTo(&result, "Failed to add item to cart")

	if !ValidateCartItem(newItem) {
		return failure(models.CartErrorValidation, "Invalid item: id, name, price and image are required")
	}

	if !o.rules.PriceFormat.MatchString(newItem.Price) {
		return failure(models.CartErrorValidation,
			fmt.Sprintf("Invalid price format %q: expected a price like $29.99", newItem.Price))
	}

	if len(items) >= models.MaxCartLines {
		return failure(models.CartErrorValidation, "Cart is full")
	}

	updated := cloneItems(items)
	idx := findLine(updated, newItem.ID, newItem.Size)
	if idx >= 0 {
		if updated[idx].Quantity+1 > o.rules.MaxQuantity {
			return failure(models.CartErrorValidation,
				fmt.Sprintf("Maximum quantity of %d reached for this item", o.rules.MaxQuantity))
		}
		updated[idx].Quantity++
	} else {
		line := newItem
		line.Quantity = 1
		updated = append(updated, line)
	}

	if !o.storage.SaveCart(ctx, updated) {
		return failure(models.CartErrorStorage, "Failed to save cart")
	}

	return success(updated)
}

// UpdateQuantity replaces the quantity of the line matching id (and size,
// when given). Quantity zero delegates to RemoveItem. When size is nil the
// line is matched by id alone.
func (o *Operations) UpdateQuantity(ctx context.Context, items []models.CartItem, id string, quantity int, size *string) (result models.CartOperationResult) {
	defer o.recoverTo(&result, "Failed to update item quantity")

	if quantity < 0 {
		return failure(models.CartErrorValidation, "Quantity cannot be negative")
	}
	if quantity > o.rules.MaxQuantity {
		return failure(models.CartErrorValidation,
			fmt.Sprintf("Quantity cannot exceed %d", o.rules.MaxQuantity))
	}
	if quantity == 0 {
		return o.RemoveItem(ctx, items, id, size)
	}

	updated := cloneItems(items)

	var idx int
	if size == nil {
		idx = findLineByID(updated, id)
	} else {
		idx = findLine(updated, id, *size)
	}
	if idx < 0 {
		return failure(models.CartErrorValidation, "Item not found in cart")
	}

	updated[idx].Quantity = quantity

	if !o.storage.SaveCart(ctx, updated) {
		return failure(models.CartErrorStorage, "Failed to save cart")
	}

	return success(updated)
}

// RemoveItem removes the line(s) matching id (and size, when given).
// Removing something that isn't there is a validation error and leaves the
// cart unchanged.
func (o *Operations) RemoveItem(ctx context.Context, items []models.CartItem, id string, size *string) (result models.CartOperationResult) {
	defer o.recoverTo(&result, "Failed to remove item from cart")

	filtered := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID == id && (size == nil || item.Size == *size) {
			continue
		}
		filtered = append(filtered, item)
	}

	if len(filtered) == len(items) {
		return failure(models.CartErrorValidation, "Item not found in cart")
	}

	if !o.storage.SaveCart(ctx, filtered) {
		return failure(models.CartErrorStorage, "Failed to save cart")
	}

	return success(filtered)
}

// ClearCart persists an empty cart and returns it
func (o *Operations) ClearCart(ctx context.Context) (result models.CartOperationResult) {
	defer o.recoverTo(&result, "Failed to clear cart")

	if !o.storage.ClearCart(ctx) {
		return failure(models.CartErrorStorage, "Failed to clear cart")
	}

	return success([]models.CartItem{})
}

// LoadCart hydrates the cart from storage, running the legacy-format
// migration first. Corruption was already healed at the storage layer, so
// this only fails on unexpected internal errors.
func (o *Operations) LoadCart(ctx context.Context) (result models.CartOperationResult) {
	defer o.recoverTo(&result, "Failed to load cart")

	o.storage.MigrateCartFormat(ctx)

	items, cartErr := o.storage.LoadCartResult(ctx)
	if cartErr != nil {
		return models.CartOperationResult{Success: false, Error: cartErr}
	}

	return success(items)
}

// MergeCart combines two carts: quantities are summed for matching
// (id, size) pairs and unmatched lines of b are appended. Pure, no
// persistence; for cross-device sync, the caller persists the result.
func (o *Operations) MergeCart(a, b []models.CartItem) []models.CartItem {
	merged := cloneItems(a)

	for _, item := range b {
		idx := findLine(merged, item.ID, item.Size)
		if idx >= 0 {
			merged[idx].Quantity += item.Quantity
		} else {
			merged = append(merged, item)
		}
	}

	return merged
}

// ValidateCart sweeps a cart for consistency: lines failing shape
// validation or with a non-positive quantity are dropped, quantities above
// the max are clamped down. Every repair is reported as an issue; the
// caller gets a repaired cart instead of a rejection.
func (o *Operations) ValidateCart(items []models.CartItem) models.CartConsistency {
	cleaned := make([]models.CartItem, 0, len(items))
	issues := []string{}

	for i, item := range items {
		if !ValidateCartItem(item) {
			issues = append(issues, fmt.Sprintf("item %d (%s): missing required fields, removed", i, item.ID))
			continue
		}
		if item.Quantity < o.rules.MinQuantity {
			issues = append(issues, fmt.Sprintf("item %d (%s): invalid quantity %d, removed", i, item.ID, item.Quantity))
			continue
		}
		if item.Quantity > o.rules.MaxQuantity {
			issues = append(issues, fmt.Sprintf("item %d (%s): quantity %d clamped to %d", i, item.ID, item.Quantity, o.rules.MaxQuantity))
			item.Quantity = o.rules.MaxQuantity
		}
		cleaned = append(cleaned, item)
	}

	return models.CartConsistency{
		IsValid:      len(issues) == 0,
		CleanedItems: cleaned,
		Issues:       issues,
	}
}
