package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"mu-waterwear/cart"
	"mu-waterwear/models"
	"mu-waterwear/repository"
	"mu-waterwear/service"
)

// CheckoutController turns the current cart into a Stripe Checkout Session
type CheckoutController struct {
	store    repository.KVStore
	checkout *service.CheckoutService
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(store repository.KVStore, checkout *service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		store:    store,
		checkout: checkout,
	}
}

// CreateSession handles POST /checkout
// Runs the cart consistency sweep, persists any repairs, then creates the
// checkout session from the repaired snapshot.
func (c *CheckoutController) CreateSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateSession: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.checkout == nil {
		http.Error(w, "Checkout is not configured", http.StatusServiceUnavailable)
		return
	}

	var req models.CheckoutRequest
	if r.Body != nil {
		// Body is optional; ignore decode errors on an empty body
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	cookie, err := r.Cookie(cartIDCookie)
	if err != nil || cookie.Value == "" {
		http.Error(w, "No cart found", http.StatusBadRequest)
		return
	}
	cartID := cookie.Value

	ops := cart.NewOperations(cart.NewStorage(c.store, cartID))
	current := ops.LoadCart(r.Context())
	if !current.Success {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	consistency := ops.ValidateCart(current.Items)
	if !consistency.IsValid {
		for _, issue := range consistency.Issues {
			log.Printf("⚠️  CreateSession: cart repaired: %s", issue)
		}
		ops.Storage().SaveCart(r.Context(), consistency.CleanedItems)
	}

	if len(consistency.CleanedItems) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	resp, err := c.checkout.CreateSession(r.Context(), cartID, consistency.CleanedItems, req.Expedited)
	if err != nil {
		log.Printf("❌ CreateSession: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create checkout session: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("❌ CreateSession: error encoding response: %v", err)
	}
}
