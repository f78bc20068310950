package app

import (
	"fmt"
	"log"
	"os"

	"mu-waterwear/app/controller"
	"mu-waterwear/app/router"
	"mu-waterwear/db"
	"mu-waterwear/pricing"
	"mu-waterwear/repository"
	"mu-waterwear/service"
)

// Initialize initializes the application
func Initialize() error {
	// Cart storage: Postgres-backed by default, in-memory for local
	// development without a database
	var store repository.KVStore
	if os.Getenv("CART_STORE") == "memory" {
		log.Printf("⚠️  Using in-memory cart store, carts will not survive restarts")
		store = repository.NewMemoryKVStore()
	} else {
		if err := db.InitDB(); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		store = repository.NewKVRepository()
	}

	// Shipping and tax rules (SHIPPING_CONFIG_PATH optional, defaults apply)
	rules, err := pricing.LoadRules(os.Getenv("SHIPPING_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("failed to load shipping rules: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	orderRepo := repository.NewOrderRepository()
	paymentRepo := repository.NewPaymentRepository()

	// Printify is optional: without credentials the catalogue sync and
	// order fulfillment endpoints report unavailable
	var printifyService service.PrintifyServiceInterface
	var syncService service.ProductSyncServiceInterface
	printify, err := service.NewPrintifyService(os.Getenv("PRINTIFY_API_TOKEN"), os.Getenv("PRINTIFY_SHOP_ID"))
	if err != nil {
		log.Printf("⚠️  Printify disabled: %v", err)
	} else {
		printifyService = printify
		syncService = service.NewProductSyncService(printify, productRepo)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Stripe checkout is optional for local development
	var checkoutService *service.CheckoutService
	checkout, err := service.NewCheckoutService(os.Getenv("STRIPE_SECRET_KEY"), baseURL, rules)
	if err != nil {
		log.Printf("⚠️  Checkout disabled: %v", err)
	} else {
		checkoutService = checkout
	}

	imageOptimizer, err := service.NewImageOptimizer()
	if err != nil {
		return err
	}

	receiptService := service.NewReceiptService(baseURL)

	// Create controllers
	controllers := &router.Controllers{
		Cart:     controller.NewCartController(store, rules),
		Checkout: controller.NewCheckoutController(store, checkoutService),
		Webhook: controller.NewWebhookController(
			os.Getenv("STRIPE_WEBHOOK_SECRET"),
			store,
			paymentRepo,
			orderRepo,
			productRepo,
			printifyService,
		),
		Product: controller.NewProductController(productRepo, syncService, imageOptimizer),
		Order:   controller.NewOrderController(orderRepo, receiptService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
