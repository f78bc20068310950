package models

import (
	"regexp"
	"time"
)

// CartItem represents one line in a shopping cart.
// Identity is the (ID, Size) pair: adding an item whose pair matches an
// existing line increments that line instead of appending a new one.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"` // display format, e.g. "$29.99"
	Size     string `json:"size,omitempty"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// CartErrorType classifies cart operation failures
type CartErrorType string

const (
	CartErrorValidation CartErrorType = "validation"
	CartErrorStorage    CartErrorType = "storage"
	CartErrorNetwork    CartErrorType = "network" // reserved for remote sync
	CartErrorUnknown    CartErrorType = "unknown"
)

// CartError describes a failed cart operation. It is always carried inside
// a CartOperationResult, never returned as a Go error across the cart
// engine boundary.
type CartError struct {
	Message   string        `json:"message"`
	Type      CartErrorType `json:"type"`
	Timestamp int64         `json:"timestamp"` // epoch milliseconds
}

// NewCartError creates a CartError stamped with the current time
func NewCartError(errType CartErrorType, message string) *CartError {
	return &CartError{
		Message:   message,
		Type:      errType,
		Timestamp: time.Now().UnixMilli(),
	}
}

// CartOperationResult is the uniform envelope returned by every mutating
// cart operation. On success Items holds the updated cart; on failure
// Error is set and Items is nil.
type CartOperationResult struct {
	Success bool       `json:"success"`
	Items   []CartItem `json:"items,omitempty"`
	Error   *CartError `json:"error,omitempty"`
}

// CartDataValidation is the result of validating an arbitrary deserialized
// value as a candidate cart. Errors are index-labeled and exhaustive: the
// check does not stop at the first violation.
type CartDataValidation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// CartConsistency is the result of a full-cart consistency sweep. Invalid
// lines are dropped and oversized quantities clamped; each repair is
// reported as an issue rather than a rejection.
type CartConsistency struct {
	IsValid      bool       `json:"isValid"`
	CleanedItems []CartItem `json:"cleanedItems"`
	Issues       []string   `json:"issues"`
}

// CartSummary is the full price breakdown for a cart snapshot
type CartSummary struct {
	ItemCount             int     `json:"itemCount"`
	Subtotal              string  `json:"subtotal"`
	SubtotalRaw           float64 `json:"subtotalRaw"`
	Tax                   string  `json:"tax"`
	TaxRaw                float64 `json:"taxRaw"`
	TaxRate               float64 `json:"taxRate"` // percentage, e.g. 8
	Shipping              string  `json:"shipping"`
	ShippingRaw           float64 `json:"shippingRaw"`
	FreeShippingThreshold string  `json:"freeShippingThreshold"`
	FreeShippingRemaining string  `json:"freeShippingRemaining"`
	GrandTotal            string  `json:"grandTotal"`
	GrandTotalRaw         float64 `json:"grandTotalRaw"`
	Savings               string  `json:"savings"` // shipping waived when free shipping applied
}

// CartValidationRules holds the validation policy for cart items
type CartValidationRules struct {
	MinQuantity    int
	MaxQuantity    int
	RequiredFields []string
	PriceFormat    *regexp.Regexp
}

// priceFormatPattern is the canonical price representation: "$29.99"
var priceFormatPattern = regexp.MustCompile(`^\$\d+(\.\d+)?$`)

// DefaultValidationRules returns the standard cart validation policy
func DefaultValidationRules() CartValidationRules {
	return CartValidationRules{
		MinQuantity:    1,
		MaxQuantity:    99,
		RequiredFields: []string{"id", "name", "price", "image"},
		PriceFormat:    priceFormatPattern,
	}
}

// MaxCartLines is the "cart full" ceiling: the maximum number of distinct
// lines a cart may hold. Enforced at the orchestration layer, not by item
// validation.
const MaxCartLines = 50

// Cart storage key layout. Each cart is persisted under a single key
// derived from its cart ID; the legacy prefix exists only for the one-time
// format migration.
const (
	CartStorageKeyPrefix       = "mu:cart:"
	LegacyCartStorageKeyPrefix = "cart_"
	CartStorageProbeKey        = "mu:cart:__probe__"
)

// UpdateQuantityRequest is the request body for updating a line quantity.
// Size is optional: when omitted the line is matched by id alone.
type UpdateQuantityRequest struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Size     *string `json:"size,omitempty"`
}

// RemoveItemRequest is the request body for removing a line
type RemoveItemRequest struct {
	ID   string  `json:"id"`
	Size *string `json:"size,omitempty"`
}
