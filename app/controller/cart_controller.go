package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"mu-waterwear/cart"
	"mu-waterwear/models"
	"mu-waterwear/pricing"
	"mu-waterwear/repository"
)

// cartIDCookie identifies one shopper's cart across requests
const cartIDCookie = "mu_cart_id"

// CartController exposes the cart engine over HTTP. Each request resolves
// the shopper's cart id from a cookie and works through an Operations
// instance bound to that cart; the handler always responds with the
// operation result envelope.
type CartController struct {
	store repository.KVStore
	rules pricing.Rules
}

// NewCartController creates a new CartController
func NewCartController(store repository.KVStore, rules pricing.Rules) *CartController {
	return &CartController{
		store: store,
		rules: rules,
	}
}

// cartID returns the shopper's cart id, minting one on first touch
func (c *CartController) cartID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(cartIDCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartIDCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   180 * 24 * 60 * 60, // ~6 months
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// operations builds the orchestration layer for the request's cart
func (c *CartController) operations(w http.ResponseWriter, r *http.Request) *cart.Operations {
	return cart.NewOperations(cart.NewStorage(c.store, c.cartID(w, r)))
}

// writeResult serializes the operation envelope. The HTTP status follows
// the error type; the body is always the envelope itself.
func writeResult(w http.ResponseWriter, result models.CartOperationResult) {
	status := http.StatusOK
	if !result.Success && result.Error != nil {
		switch result.Error.Type {
		case models.CartErrorValidation:
			status = http.StatusBadRequest
		default:
			status = http.StatusInternalServerError
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("❌ Cart: error encoding response: %v", err)
	}
}

// GetCart handles GET /cart
// Hydrates the cart from storage (running the legacy-format migration)
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ops := c.operations(w, r)
	writeResult(w, ops.LoadCart(r.Context()))
}

// AddItem handles POST /cart/items
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Printf("❌ AddItem: Failed to decode request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ops := c.operations(w, r)
	current := ops.LoadCart(r.Context())
	if !current.Success {
		writeResult(w, current)
		return
	}

	writeResult(w, ops.AddItem(r.Context(), current.Items, item))
}

// UpdateQuantity handles PUT /cart/items
func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateQuantity: Received %s request to %s", r.Method, r.URL.Path)

	var req models.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateQuantity: Failed to decode request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ops := c.operations(w, r)
	current := ops.LoadCart(r.Context())
	if !current.Success {
		writeResult(w, current)
		return
	}

	writeResult(w, ops.UpdateQuantity(r.Context(), current.Items, req.ID, req.Quantity, req.Size))
}

// RemoveItem handles DELETE /cart/items
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RemoveItem: Received %s request to %s", r.Method, r.URL.Path)

	var req models.RemoveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ RemoveItem: Failed to decode request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ops := c.operations(w, r)
	current := ops.LoadCart(r.Context())
	if !current.Success {
		writeResult(w, current)
		return
	}

	writeResult(w, ops.RemoveItem(r.Context(), current.Items, req.ID, req.Size))
}

// ClearCart handles DELETE /cart
func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	ops := c.operations(w, r)
	writeResult(w, ops.ClearCart(r.Context()))
}

// GetSummary handles GET /cart/summary
// Returns the full price breakdown for the current cart
func (c *CartController) GetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ops := c.operations(w, r)
	current := ops.LoadCart(r.Context())
	if !current.Success {
		writeResult(w, current)
		return
	}

	summary := cart.GetCartSummary(current.Items, c.rules)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		log.Printf("❌ GetSummary: error encoding response: %v", err)
	}
}
