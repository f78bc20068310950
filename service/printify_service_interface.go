package service

import (
	"context"

	"mu-waterwear/models"
)

// PrintifyServiceInterface defines the contract for the Printify API client
type PrintifyServiceInterface interface {
	ListProducts(ctx context.Context) ([]models.PrintifyProduct, error)
	SubmitOrder(ctx context.Context, req *models.PrintifyOrderRequest) (string, error)
}
