package service

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"mu-waterwear/cart"
	"mu-waterwear/models"
	"mu-waterwear/pricing"
	"mu-waterwear/utils"
)

// CheckoutService assembles Stripe Checkout Sessions from cart snapshots.
// Payment and tax collection happen entirely on Stripe; this only builds
// the request. The cart id rides along as the client reference so the
// webhook can clear the right cart after payment.
type CheckoutService struct {
	rules   pricing.Rules
	baseURL string
}

// NewCheckoutService creates a CheckoutService. secretKey configures the
// global Stripe client key.
func NewCheckoutService(secretKey, baseURL string, rules pricing.Rules) (*CheckoutService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not set")
	}
	stripe.Key = secretKey

	return &CheckoutService{
		rules:   rules,
		baseURL: baseURL,
	}, nil
}

// CreateSession builds and creates a Stripe Checkout Session for the given
// cart snapshot. Items must already have passed the cart consistency sweep;
// an unparsable price here is a hard error, not a soft zero.
func (s *CheckoutService) CreateSession(ctx context.Context, cartID string, items []models.CartItem, expedited bool) (*models.CheckoutSessionResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	var lineItems []*stripe.CheckoutSessionLineItemParams
	for _, item := range items {
		cents, ok := utils.ParsePriceCents(item.Price)
		if !ok {
			return nil, fmt.Errorf("invalid price %q for item %s", item.Price, item.ID)
		}

		name := item.Name
		if item.Size != "" {
			name = fmt.Sprintf("%s (%s)", item.Name, item.Size)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(cents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
			},
		})
	}

	// Shipping is charged as its own line, computed from the same rules
	// the cart summary shows the shopper
	shippingCents := utils.DollarsToCents(cart.CalculateShipping(items, s.rules))
	shippingName := "Shipping"
	if expedited {
		shippingCents += s.rules.ExpeditedShippingCost
		shippingName = "Expedited shipping"
	}
	if shippingCents > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(shippingCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(shippingName),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(s.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(s.baseURL + "/checkout/cancel"),
		ClientReferenceID: stripe.String(cartID),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	log.Printf("💳 Checkout session %s created for cart %s (%d lines)", sess.ID, cartID, len(items))
	return &models.CheckoutSessionResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}
