package models

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusSubmitted = "submitted"
	OrderStatusFailed    = "failed"
)

// Order represents a completed checkout recorded for fulfillment
type Order struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"` // public order reference (uuid)
	CartID          string `json:"cartId"`
	StripeSessionID string `json:"stripeSessionId"`
	PrintifyOrderID string `json:"printifyOrderId,omitempty"`
	Status          string `json:"status"` // pending, submitted, failed
	CustomerEmail   string `json:"customerEmail,omitempty"`
	AmountTotal     int64  `json:"amountTotal"` // cents, as charged by Stripe
	Currency        string `json:"currency"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// OrderLine represents a line item in an order
type OrderLine struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"orderId"`
	ProductID string `json:"productId"` // cart item id (Printify product id)
	VariantID int64  `json:"variantId,omitempty"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"` // cents
}

// OrderResponse is an order with its lines and computed total
type OrderResponse struct {
	Order
	Lines []OrderLine `json:"lines"`
	Total int64       `json:"total"` // cents, sum of qty * unit_price
}
