package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mu-waterwear/models"
	"mu-waterwear/repository"
)

// fakePrintifyService serves a canned catalogue
type fakePrintifyService struct {
	products []models.PrintifyProduct
	err      error
}

func (f *fakePrintifyService) ListProducts(ctx context.Context) ([]models.PrintifyProduct, error) {
	return f.products, f.err
}

func (f *fakePrintifyService) SubmitOrder(ctx context.Context, req *models.PrintifyOrderRequest) (string, error) {
	return "", errors.New("not implemented")
}

// fakeProductRepository records upserts in memory
type fakeProductRepository struct {
	existing  map[string]bool
	upserted  map[string][]models.ProductVariant
	upsertErr error
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{
		existing: make(map[string]bool),
		upserted: make(map[string][]models.ProductVariant),
	}
}

var _ repository.ProductRepositoryInterface = (*fakeProductRepository)(nil)

func (f *fakeProductRepository) List(ctx context.Context, params repository.ProductFilterParams) ([]models.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProductRepository) GetByID(ctx context.Context, id int64) (*models.ProductResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProductRepository) GetByPrintifyID(ctx context.Context, printifyID string) (*models.ProductResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProductRepository) ExistsByPrintifyID(ctx context.Context, printifyID string) (bool, error) {
	return f.existing[printifyID], nil
}

func (f *fakeProductRepository) Upsert(ctx context.Context, product *models.Product, variants []models.ProductVariant) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted[product.PrintifyID] = variants
	return nil
}

func printifyProduct(id, title string) models.PrintifyProduct {
	return models.PrintifyProduct{
		ID:      id,
		Title:   title,
		Tags:    []string{"Apparel"},
		Visible: true,
		Images: []models.PrintifyImage{
			{Src: "https://cdn.printify.com/" + id + "-alt.jpg"},
			{Src: "https://cdn.printify.com/" + id + ".jpg", IsDefault: true},
		},
		Variants: []models.PrintifyVariant{
			{ID: 101, Title: "S / Navy", SKU: id + "-s", Price: 2999, IsEnabled: true, IsAvailable: true},
			{ID: 102, Title: "M / Navy", SKU: id + "-m", Price: 2499, IsEnabled: true, IsAvailable: true},
			{ID: 103, Title: "L / Navy", SKU: id + "-l", Price: 3999, IsEnabled: false},
		},
	}
}

func TestSyncProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("adds new visible products", func(t *testing.T) {
		repo := newFakeProductRepository()
		printify := &fakePrintifyService{products: []models.PrintifyProduct{
			printifyProduct("p1", "Wave Tee"),
			printifyProduct("p2", "Reef Hoodie"),
		}}

		result, err := NewProductSyncService(printify, repo).SyncProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Added)
		assert.Equal(t, 0, result.Skipped)
		assert.Equal(t, 0, result.Failed)
		assert.Len(t, repo.upserted, 2)
	})

	t.Run("existing products are refreshed but counted as skipped", func(t *testing.T) {
		repo := newFakeProductRepository()
		repo.existing["p1"] = true
		printify := &fakePrintifyService{products: []models.PrintifyProduct{
			printifyProduct("p1", "Wave Tee"),
		}}

		result, err := NewProductSyncService(printify, repo).SyncProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Added)
		assert.Equal(t, 1, result.Skipped)
		// still upserted in place
		assert.Len(t, repo.upserted, 1)
	})

	t.Run("invisible products are skipped", func(t *testing.T) {
		repo := newFakeProductRepository()
		hidden := printifyProduct("p1", "Wave Tee")
		hidden.Visible = false
		printify := &fakePrintifyService{products: []models.PrintifyProduct{hidden}}

		result, err := NewProductSyncService(printify, repo).SyncProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Empty(t, repo.upserted)
	})

	t.Run("products with no enabled variants are skipped", func(t *testing.T) {
		repo := newFakeProductRepository()
		dead := printifyProduct("p1", "Wave Tee")
		for i := range dead.Variants {
			dead.Variants[i].IsEnabled = false
		}
		printify := &fakePrintifyService{products: []models.PrintifyProduct{dead}}

		result, err := NewProductSyncService(printify, repo).SyncProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Empty(t, repo.upserted)
	})

	t.Run("an upsert failure does not abort the run", func(t *testing.T) {
		repo := newFakeProductRepository()
		repo.upsertErr = errors.New("db down")
		printify := &fakePrintifyService{products: []models.PrintifyProduct{
			printifyProduct("p1", "Wave Tee"),
			printifyProduct("p2", "Reef Hoodie"),
		}}

		result, err := NewProductSyncService(printify, repo).SyncProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Failed)
		assert.Len(t, result.Errors, 2)
	})

	t.Run("listing failure aborts", func(t *testing.T) {
		printify := &fakePrintifyService{err: errors.New("printify down")}

		_, err := NewProductSyncService(printify, newFakeProductRepository()).SyncProducts(ctx)
		assert.Error(t, err)
	})
}

func TestConvertPrintifyProduct(t *testing.T) {
	product, variants := convertPrintifyProduct(printifyProduct("p1", "Wave Tee"))

	// disabled variant excluded
	require.Len(t, variants, 2)
	assert.Equal(t, "S", variants[0].Size)
	assert.Equal(t, "Navy", variants[0].Color)
	assert.Equal(t, int64(101), variants[0].PrintifyVariantID)

	// price is the lowest enabled variant price
	assert.Equal(t, int64(2499), product.Price)
	assert.Equal(t, "apparel", product.Category)
	assert.Equal(t, "https://cdn.printify.com/p1.jpg", product.ImageURL)
	assert.True(t, product.IsActive)
}

func TestCategoryFromTags(t *testing.T) {
	assert.Equal(t, "apparel", categoryFromTags([]string{"Summer", " Apparel "}))
	assert.Equal(t, "accessories", categoryFromTags([]string{"accessories"}))
	assert.Equal(t, "gear", categoryFromTags([]string{"boards"}))
	assert.Equal(t, "gear", categoryFromTags(nil))
}
