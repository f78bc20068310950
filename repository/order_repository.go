package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"mu-waterwear/db"
	"mu-waterwear/models"
)

// OrderRepository handles database operations for orders
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// Create inserts an order and its lines in one transaction
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.Order, error) {
	log.Printf("📦 Create order: reference=%s, cart=%s, lines=%d", order.Reference, order.CartID, len(lines))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryOrder := `
		INSERT INTO orders (reference, cart_id, stripe_session_id, printify_order_id,
		                    status, customer_email, amount_total, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at::text, updated_at::text
	`

	err = tx.QueryRowContext(ctx, queryOrder,
		order.Reference, order.CartID, order.StripeSessionID, order.PrintifyOrderID,
		order.Status, order.CustomerEmail, order.AmountTotal, order.Currency,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	queryLine := `
		INSERT INTO order_lines (order_id, product_id, variant_id, name, size, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, queryLine,
			order.ID, line.ProductID, line.VariantID, line.Name, line.Size,
			line.Quantity, line.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	log.Printf("✅ Order %d created (reference=%s)", order.ID, order.Reference)
	return order, nil
}

// GetByReference returns an order with its lines, looked up by public reference
func (r *OrderRepository) GetByReference(ctx context.Context, reference string) (*models.OrderResponse, error) {
	query := `
		SELECT id, reference, cart_id, stripe_session_id, COALESCE(printify_order_id, ''),
		       status, COALESCE(customer_email, ''), amount_total, currency,
		       created_at::text, updated_at::text
		FROM orders
		WHERE reference = $1
	`

	var resp models.OrderResponse
	err := db.DB.QueryRowContext(ctx, query, reference).Scan(
		&resp.ID, &resp.Reference, &resp.CartID, &resp.StripeSessionID, &resp.PrintifyOrderID,
		&resp.Status, &resp.CustomerEmail, &resp.AmountTotal, &resp.Currency,
		&resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order %s not found", reference)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	queryLines := `
		SELECT id, order_id, product_id, COALESCE(variant_id, 0), name,
		       COALESCE(size, ''), quantity, unit_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`
	rows, err := db.DB.QueryContext(ctx, queryLines, resp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.VariantID,
			&line.Name, &line.Size, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		resp.Total += int64(line.Quantity) * line.UnitPrice
		resp.Lines = append(resp.Lines, line)
	}

	return &resp, rows.Err()
}

// MarkSubmitted records the Printify order id after successful submission
func (r *OrderRepository) MarkSubmitted(ctx context.Context, id int64, printifyOrderID string) error {
	query := `
		UPDATE orders
		SET status = $1, printify_order_id = $2, updated_at = NOW()
		WHERE id = $3
	`
	if _, err := db.DB.ExecContext(ctx, query, models.OrderStatusSubmitted, printifyOrderID, id); err != nil {
		return fmt.Errorf("failed to mark order %d submitted: %w", id, err)
	}

	log.Printf("✅ Order %d marked submitted (printify=%s)", id, printifyOrderID)
	return nil
}

// MarkFailed flags an order whose fulfillment submission failed
func (r *OrderRepository) MarkFailed(ctx context.Context, id int64) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := db.DB.ExecContext(ctx, query, models.OrderStatusFailed, id); err != nil {
		return fmt.Errorf("failed to mark order %d failed: %w", id, err)
	}

	log.Printf("❌ Order %d marked failed", id)
	return nil
}
