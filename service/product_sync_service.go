package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mu-waterwear/models"
	"mu-waterwear/repository"
	"mu-waterwear/utils"
)

// Categories recognized in Printify product tags; anything else lands in "gear"
var knownCategories = []string{"apparel", "accessories", "gear"}

// ProductSyncService handles synchronization between Printify and PostgreSQL
// Implements ProductSyncServiceInterface
type ProductSyncService struct {
	printify   PrintifyServiceInterface
	repository repository.ProductRepositoryInterface
}

// NewProductSyncService creates a new ProductSyncService
func NewProductSyncService(printify PrintifyServiceInterface, repo repository.ProductRepositoryInterface) *ProductSyncService {
	return &ProductSyncService{
		printify:   printify,
		repository: repo,
	}
}

// Ensure ProductSyncService implements ProductSyncServiceInterface
var _ ProductSyncServiceInterface = (*ProductSyncService)(nil)

// SyncProducts pulls the Printify catalogue into PostgreSQL. New products
// are inserted, existing ones updated in place; a product that fails to
// convert or persist is counted and reported but does not abort the run.
func (s *ProductSyncService) SyncProducts(ctx context.Context) (*models.SyncResult, error) {
	log.Printf("🔄 Starting catalogue synchronization from Printify")

	printifyProducts, err := s.printify.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products from Printify: %w", err)
	}

	result := &models.SyncResult{}

	for _, pp := range printifyProducts {
		if !pp.Visible {
			log.Printf("⏭️  Skipping %s (not visible in shop)", pp.ID)
			result.Skipped++
			continue
		}

		exists, err := s.repository.ExistsByPrintifyID(ctx, pp.ID)
		if err != nil {
			log.Printf("❌ Error checking existence for printify_id %s: %v", pp.ID, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", pp.ID, err))
			continue
		}

		product, variants := convertPrintifyProduct(pp)
		if len(variants) == 0 {
			log.Printf("⏭️  Skipping %s (no enabled variants)", pp.ID)
			result.Skipped++
			continue
		}

		if err := s.repository.Upsert(ctx, product, variants); err != nil {
			log.Printf("❌ Error upserting printify_id %s: %v", pp.ID, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", pp.ID, err))
			continue
		}

		if exists {
			result.Skipped++
		} else {
			log.Printf("🆕 New product synced: %s (%s)", pp.ID, pp.Title)
			result.Added++
		}
	}

	log.Printf("🎉 Synchronization completed: %d added, %d skipped, %d failed", result.Added, result.Skipped, result.Failed)
	return result, nil
}

// convertPrintifyProduct maps a Printify product document onto the local
// catalogue model. The product price is the lowest enabled variant price.
func convertPrintifyProduct(pp models.PrintifyProduct) (*models.Product, []models.ProductVariant) {
	var variants []models.ProductVariant
	var minPrice int64

	for _, v := range pp.Variants {
		if !v.IsEnabled {
			continue
		}

		size, color := utils.ParseVariantTitle(v.Title)
		variants = append(variants, models.ProductVariant{
			PrintifyVariantID: v.ID,
			Size:              size,
			Color:             color,
			SKU:               v.SKU,
			Price:             v.Price,
			InStock:           v.IsAvailable,
		})

		if minPrice == 0 || v.Price < minPrice {
			minPrice = v.Price
		}
	}

	var imageURL string
	for _, img := range pp.Images {
		if img.IsDefault {
			imageURL = img.Src
			break
		}
	}
	if imageURL == "" && len(pp.Images) > 0 {
		imageURL = pp.Images[0].Src
	}

	product := &models.Product{
		PrintifyID:  pp.ID,
		Name:        pp.Title,
		Description: pp.Description,
		Category:    categoryFromTags(pp.Tags),
		Price:       minPrice,
		ImageURL:    imageURL,
		IsActive:    true,
	}

	return product, variants
}

// categoryFromTags picks the first recognized category tag, defaulting to "gear"
func categoryFromTags(tags []string) string {
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		for _, known := range knownCategories {
			if normalized == known {
				return known
			}
		}
	}
	return "gear"
}
