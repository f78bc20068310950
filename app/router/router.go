package router

import (
	"net/http"
	"strings"

	"mu-waterwear/app/controller"
)

type Controllers struct {
	Cart     *controller.CartController
	Checkout *controller.CheckoutController
	Webhook  *controller.WebhookController
	Product  *controller.ProductController
	Order    *controller.OrderController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Cart routes
	// Whole cart - handles GET (load) and DELETE (clear)
	http.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Cart.GetCart(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Cart.ClearCart(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Cart lines - handles POST (add), PUT/PATCH (quantity) and DELETE (remove)
	http.HandleFunc("/cart/items", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Cart.AddItem(w, r)
		} else if r.Method == http.MethodPut || r.Method == http.MethodPatch {
			controllers.Cart.UpdateQuantity(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Cart.RemoveItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Cart totals
	http.HandleFunc("/cart/summary", controllers.Cart.GetSummary)

	// Checkout routes
	http.HandleFunc("/checkout", controllers.Checkout.CreateSession)

	// Stripe webhook
	http.HandleFunc("/webhooks/stripe", controllers.Webhook.HandleStripe)

	// Product routes
	http.HandleFunc("/products", controllers.Product.ListProducts)

	// Product by id, plus the optimized image endpoint
	http.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/image") {
			controllers.Product.GetProductImage(w, r)
			return
		}
		controllers.Product.GetProduct(w, r)
	})

	// Catalogue sync from Printify
	http.HandleFunc("/admin/products/sync", controllers.Product.SyncProducts)

	// Order routes
	http.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/receipt.pdf") {
			controllers.Order.GetReceiptPDF(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/receipt") {
			controllers.Order.GetReceipt(w, r)
			return
		}
		controllers.Order.GetOrder(w, r)
	})
}
