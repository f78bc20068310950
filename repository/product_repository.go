package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"mu-waterwear/db"
	"mu-waterwear/models"
	"mu-waterwear/utils"
)

// ProductFilterParams represents optional filter parameters for products
type ProductFilterParams struct {
	Category *string
	Size     *string
}

// ProductRepository handles database operations for the product catalogue
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// List returns active products, optionally filtered by category and size
func (r *ProductRepository) List(ctx context.Context, params ProductFilterParams) ([]models.Product, error) {
	query := `
		SELECT DISTINCT p.id, p.printify_id, p.name, COALESCE(p.description, ''),
		       p.category, p.price, p.image_url, p.is_active, p.created_at::text
		FROM products p
	`
	args := []interface{}{}
	where := ` WHERE p.is_active = true`

	if params.Size != nil {
		query += ` INNER JOIN product_variants pv ON pv.product_id = p.id`
		args = append(args, utils.NormalizeSize(*params.Size))
		where += fmt.Sprintf(` AND pv.size = $%d AND pv.in_stock = true`, len(args))
	}

	if params.Category != nil {
		args = append(args, *params.Category)
		where += fmt.Sprintf(` AND p.category = $%d`, len(args))
	}

	query += where + ` ORDER BY p.id ASC`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.PrintifyID, &p.Name, &p.Description,
			&p.Category, &p.Price, &p.ImageURL, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// GetByID returns a product with its variants
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.ProductResponse, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByPrintifyID returns a product with its variants, looked up by the
// Printify product id (the id carried in cart lines)
func (r *ProductRepository) GetByPrintifyID(ctx context.Context, printifyID string) (*models.ProductResponse, error) {
	return r.getByColumn(ctx, "printify_id", printifyID)
}

func (r *ProductRepository) getByColumn(ctx context.Context, column string, value interface{}) (*models.ProductResponse, error) {
	query := fmt.Sprintf(`
		SELECT id, printify_id, name, COALESCE(description, ''),
		       category, price, image_url, is_active, created_at::text
		FROM products
		WHERE %s = $1
	`, column)

	var p models.ProductResponse
	err := db.DB.QueryRowContext(ctx, query, value).Scan(&p.ID, &p.PrintifyID, &p.Name,
		&p.Description, &p.Category, &p.Price, &p.ImageURL, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %v not found", value)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	variantQuery := `
		SELECT id, product_id, printify_variant_id, COALESCE(size, ''),
		       COALESCE(color, ''), sku, price, in_stock
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id ASC
	`
	rows, err := db.DB.QueryContext(ctx, variantQuery, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.PrintifyVariantID, &v.Size,
			&v.Color, &v.SKU, &v.Price, &v.InStock); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		p.Variants = append(p.Variants, v)
	}

	return &p, rows.Err()
}

// ExistsByPrintifyID checks whether a product has already been synced
func (r *ProductRepository) ExistsByPrintifyID(ctx context.Context, printifyID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE printify_id = $1)`

	var exists bool
	if err := db.DB.QueryRowContext(ctx, query, printifyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// Upsert inserts or updates a product and replaces its variants in one transaction
func (r *ProductRepository) Upsert(ctx context.Context, product *models.Product, variants []models.ProductVariant) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryUpsert := `
		INSERT INTO products (printify_id, name, description, category, price, image_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (printify_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			is_active = EXCLUDED.is_active
		RETURNING id
	`

	var productID int64
	err = tx.QueryRowContext(ctx, queryUpsert,
		product.PrintifyID, product.Name, product.Description, product.Category,
		product.Price, product.ImageURL, product.IsActive).Scan(&productID)
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", product.PrintifyID, err)
	}

	// Replace variants wholesale: the Printify listing is the source of truth
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear variants: %w", err)
	}

	queryVariant := `
		INSERT INTO product_variants (product_id, printify_variant_id, size, color, sku, price, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, v := range variants {
		if _, err := tx.ExecContext(ctx, queryVariant,
			productID, v.PrintifyVariantID, v.Size, v.Color, v.SKU, v.Price, v.InStock); err != nil {
			return fmt.Errorf("failed to insert variant %s: %w", v.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product upsert: %w", err)
	}

	product.ID = productID
	log.Printf("📦 Upserted product %s (%s) with %d variants", product.PrintifyID, product.Name, len(variants))
	return nil
}
