package service

import (
	"context"

	"mu-waterwear/models"
)

// ProductSyncServiceInterface defines the contract for catalogue synchronization
type ProductSyncServiceInterface interface {
	SyncProducts(ctx context.Context) (*models.SyncResult, error)
}
