package controller

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"mu-waterwear/cart"
	"mu-waterwear/models"
	"mu-waterwear/repository"
	"mu-waterwear/service"
	"mu-waterwear/utils"
)

// maxWebhookBody bounds the webhook payload size
const maxWebhookBody = 65536

// WebhookController receives Stripe webhook events. On a completed
// checkout session it records the payment, creates the order, submits it
// to Printify for fulfillment and clears the shopper's cart.
type WebhookController struct {
	webhookSecret string
	store         repository.KVStore
	payments      repository.PaymentRepositoryInterface
	orders        repository.OrderRepositoryInterface
	products      repository.ProductRepositoryInterface
	printify      service.PrintifyServiceInterface
}

// NewWebhookController creates a new WebhookController
func NewWebhookController(
	webhookSecret string,
	store repository.KVStore,
	payments repository.PaymentRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	products repository.ProductRepositoryInterface,
	printify service.PrintifyServiceInterface,
) *WebhookController {
	return &WebhookController{
		webhookSecret: webhookSecret,
		store:         store,
		payments:      payments,
		orders:        orders,
		products:      products,
		printify:      printify,
	}
}

// HandleStripe handles POST /webhooks/stripe
func (c *WebhookController) HandleStripe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		log.Printf("❌ Webhook: failed to read payload: %v", err)
		http.Error(w, "Failed to read payload", http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), c.webhookSecret)
	if err != nil {
		log.Printf("❌ Webhook: signature verification failed: %v", err)
		http.Error(w, "Invalid signature", http.StatusBadRequest)
		return
	}

	log.Printf("📥 Webhook: received event %s (%s)", event.ID, event.Type)

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Printf("❌ Webhook: failed to decode session: %v", err)
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		c.handleCheckoutCompleted(r.Context(), &session)
	default:
		log.Printf("⏭️  Webhook: ignoring event type %s", event.Type)
	}

	// Always acknowledge handled events so Stripe stops redelivering;
	// fulfillment failures are recorded on the order instead.
	w.WriteHeader(http.StatusOK)
}

// handleCheckoutCompleted processes a paid checkout session
func (c *WebhookController) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) {
	exists, err := c.payments.ExistsBySessionID(ctx, session.ID)
	if err != nil {
		log.Printf("❌ Webhook: idempotency check failed for %s: %v", session.ID, err)
		return
	}
	if exists {
		log.Printf("⏭️  Webhook: session %s already processed", session.ID)
		return
	}

	var email string
	if session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
	}
	var intentID string
	if session.PaymentIntent != nil {
		intentID = session.PaymentIntent.ID
	}

	payment := &models.Payment{
		StripeSessionID: session.ID,
		PaymentIntentID: intentID,
		AmountTotal:     session.AmountTotal,
		Currency:        string(session.Currency),
		CustomerEmail:   email,
		Status:          string(session.PaymentStatus),
	}
	if err := c.payments.Record(ctx, payment); err != nil {
		log.Printf("❌ Webhook: failed to record payment for %s: %v", session.ID, err)
		return
	}

	cartID := session.ClientReferenceID
	if cartID == "" {
		log.Printf("❌ Webhook: session %s has no cart reference", session.ID)
		return
	}

	storage := cart.NewStorage(c.store, cartID)
	items := storage.LoadCart(ctx)
	if len(items) == 0 {
		log.Printf("⚠️  Webhook: cart %s is empty, nothing to fulfill", cartID)
		return
	}

	order := &models.Order{
		Reference:       uuid.NewString(),
		CartID:          cartID,
		StripeSessionID: session.ID,
		Status:          models.OrderStatusPending,
		CustomerEmail:   email,
		AmountTotal:     session.AmountTotal,
		Currency:        string(session.Currency),
	}

	lines, printifyLines := c.resolveLines(ctx, items)

	order, err = c.orders.Create(ctx, order, lines)
	if err != nil {
		log.Printf("❌ Webhook: failed to create order for %s: %v", session.ID, err)
		return
	}

	// The cart is consumed by checkout completion regardless of
	// fulfillment outcome; the shopper has paid for this snapshot.
	storage.ClearCart(ctx)

	if len(printifyLines) == 0 {
		log.Printf("❌ Webhook: no fulfillable lines for order %s", order.Reference)
		c.orders.MarkFailed(ctx, order.ID)
		return
	}
	if c.printify == nil {
		log.Printf("❌ Webhook: Printify is not configured, order %s left pending", order.Reference)
		return
	}

	printifyOrderID, err := c.printify.SubmitOrder(ctx, &models.PrintifyOrderRequest{
		ExternalID: order.Reference,
		LineItems:  printifyLines,
		AddressTo:  addressFromSession(session),
	})
	if err != nil {
		log.Printf("❌ Webhook: fulfillment submission failed for %s: %v", order.Reference, err)
		c.orders.MarkFailed(ctx, order.ID)
		return
	}

	if err := c.orders.MarkSubmitted(ctx, order.ID, printifyOrderID); err != nil {
		log.Printf("❌ Webhook: failed to update order %s: %v", order.Reference, err)
	}
}

// resolveLines maps cart lines onto order lines and Printify line items.
// A cart line whose product or variant cannot be resolved still becomes an
// order line (the shopper paid for it) but is excluded from the
// fulfillment submission.
func (c *WebhookController) resolveLines(ctx context.Context, items []models.CartItem) ([]models.OrderLine, []models.PrintifyLineItem) {
	var lines []models.OrderLine
	var printifyLines []models.PrintifyLineItem

	for _, item := range items {
		unitPrice, _ := utils.ParsePriceCents(item.Price)
		line := models.OrderLine{
			ProductID: item.ID,
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		}

		product, err := c.products.GetByPrintifyID(ctx, item.ID)
		if err != nil {
			log.Printf("⚠️  Webhook: product %s not in catalogue: %v", item.ID, err)
			lines = append(lines, line)
			continue
		}

		variantID := matchVariant(product.Variants, item.Size)
		if variantID == 0 {
			log.Printf("⚠️  Webhook: no variant of %s matches size %q", item.ID, item.Size)
			lines = append(lines, line)
			continue
		}

		line.VariantID = variantID
		lines = append(lines, line)
		printifyLines = append(printifyLines, models.PrintifyLineItem{
			ProductID: product.PrintifyID,
			VariantID: variantID,
			Quantity:  item.Quantity,
		})
	}

	return lines, printifyLines
}

// matchVariant finds the Printify variant id for a size; falls back to the
// sole variant for sizeless products
func matchVariant(variants []models.ProductVariant, size string) int64 {
	normalized := utils.NormalizeSize(size)
	for _, v := range variants {
		if v.Size == normalized {
			return v.PrintifyVariantID
		}
	}
	if size == "" && len(variants) == 1 {
		return variants[0].PrintifyVariantID
	}
	return 0
}

// addressFromSession extracts the shipping destination from the session's
// customer details
func addressFromSession(session *stripe.CheckoutSession) models.PrintifyAddress {
	addr := models.PrintifyAddress{}

	details := session.CustomerDetails
	if details == nil {
		return addr
	}

	addr.Email = details.Email
	addr.Phone = details.Phone

	parts := strings.SplitN(strings.TrimSpace(details.Name), " ", 2)
	if len(parts) > 0 {
		addr.FirstName = parts[0]
	}
	if len(parts) > 1 {
		addr.LastName = parts[1]
	}

	if details.Address != nil {
		addr.Country = details.Address.Country
		addr.Region = details.Address.State
		addr.Address1 = details.Address.Line1
		addr.Address2 = details.Address.Line2
		addr.City = details.Address.City
		addr.Zip = details.Address.PostalCode
	}

	return addr
}
