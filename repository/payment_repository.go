package repository

import (
	"context"
	"fmt"
	"log"

	"mu-waterwear/db"
	"mu-waterwear/models"
)

// PaymentRepository handles database operations for payment records
type PaymentRepository struct{}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

// Ensure PaymentRepository implements PaymentRepositoryInterface
var _ PaymentRepositoryInterface = (*PaymentRepository)(nil)

// ExistsBySessionID checks whether a checkout session has already been
// recorded. Stripe retries webhook deliveries; this is the idempotency check.
func (r *PaymentRepository) ExistsBySessionID(ctx context.Context, sessionID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payments WHERE stripe_session_id = $1)`

	var exists bool
	if err := db.DB.QueryRowContext(ctx, query, sessionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payment existence: %w", err)
	}
	return exists, nil
}

// Record inserts a payment record
func (r *PaymentRepository) Record(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (stripe_session_id, payment_intent_id, amount_total,
		                      currency, customer_email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at::text
	`

	err := db.DB.QueryRowContext(ctx, query,
		payment.StripeSessionID, payment.PaymentIntentID, payment.AmountTotal,
		payment.Currency, payment.CustomerEmail, payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	log.Printf("💰 Payment recorded: session=%s, amount=%d %s", payment.StripeSessionID, payment.AmountTotal, payment.Currency)
	return nil
}
