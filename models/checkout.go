package models

// CheckoutRequest is the request body for creating a checkout session
type CheckoutRequest struct {
	Expedited bool `json:"expedited,omitempty"`
}

// CheckoutSessionResponse is returned after a checkout session is created.
// The client redirects the shopper to URL; payment happens on Stripe.
type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
