package models

// Payment records a Stripe payment event received via webhook.
// StripeSessionID is unique: replayed webhook deliveries are detected and
// skipped on it.
type Payment struct {
	ID              int64  `json:"id"`
	StripeSessionID string `json:"stripeSessionId"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	AmountTotal     int64  `json:"amountTotal"` // cents
	Currency        string `json:"currency"`
	CustomerEmail   string `json:"customerEmail,omitempty"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}
