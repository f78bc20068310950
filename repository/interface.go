package repository

import (
	"context"

	"mu-waterwear/models"
)

// KVStore is the persistence port for cart data. It mirrors a browser
// key-value store: any call may fail and callers are expected to catch
// and degrade rather than propagate.
type KVStore interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key string, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// ProductRepositoryInterface defines the contract for product catalogue operations
type ProductRepositoryInterface interface {
	List(ctx context.Context, params ProductFilterParams) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.ProductResponse, error)
	GetByPrintifyID(ctx context.Context, printifyID string) (*models.ProductResponse, error)
	ExistsByPrintifyID(ctx context.Context, printifyID string) (bool, error)
	Upsert(ctx context.Context, product *models.Product, variants []models.ProductVariant) error
}

// OrderRepositoryInterface defines the contract for order persistence
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.Order, error)
	GetByReference(ctx context.Context, reference string) (*models.OrderResponse, error)
	MarkSubmitted(ctx context.Context, id int64, printifyOrderID string) error
	MarkFailed(ctx context.Context, id int64) error
}

// PaymentRepositoryInterface defines the contract for payment records
type PaymentRepositoryInterface interface {
	ExistsBySessionID(ctx context.Context, sessionID string) (bool, error)
	Record(ctx context.Context, payment *models.Payment) error
}
