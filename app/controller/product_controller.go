package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"mu-waterwear/repository"
	"mu-waterwear/service"
)

// ProductController handles HTTP requests for the product catalogue
type ProductController struct {
	repository repository.ProductRepositoryInterface
	sync       service.ProductSyncServiceInterface
	images     *service.ImageOptimizer
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface, sync service.ProductSyncServiceInterface, images *service.ImageOptimizer) *ProductController {
	return &ProductController{
		repository: repo,
		sync:       sync,
		images:     images,
	}
}

// ListProducts handles GET /products
// Optional query parameters: category, size
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var params repository.ProductFilterParams
	if category := r.URL.Query().Get("category"); category != "" {
		params.Category = &category
	}
	if size := r.URL.Query().Get("size"); size != "" {
		params.Size = &size
	}

	products, err := c.repository.List(r.Context(), params)
	if err != nil {
		log.Printf("❌ ListProducts: %v", err)
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(products); err != nil {
		log.Printf("❌ ListProducts: error encoding response: %v", err)
	}
}

// productID extracts the numeric id from paths like /products/123 and /products/123/image
func productID(path string) (int64, error) {
	rest := strings.TrimPrefix(path, "/products/")
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		rest = rest[:idx]
	}
	return strconv.ParseInt(rest, 10, 64)
}

// GetProduct handles GET /products/{id}
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := productID(r.URL.Path)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetProduct: %v", err)
		http.Error(w, "Failed to get product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(product); err != nil {
		log.Printf("❌ GetProduct: error encoding response: %v", err)
	}
}

// GetProductImage handles GET /products/{id}/image?size=thumb|medium
// Serves an optimized JPEG rendition of the product mockup
func (c *ProductController) GetProductImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := productID(r.URL.Path)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "thumb"
	}

	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if product.ImageURL == "" {
		http.Error(w, "Product has no image", http.StatusNotFound)
		return
	}

	data, err := c.images.GetOptimizedImage(r.Context(), id, product.ImageURL, size)
	if err != nil {
		log.Printf("❌ GetProductImage: %v", err)
		http.Error(w, "Failed to optimize image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// SyncProducts handles POST /admin/products/sync
// Pulls the Printify catalogue into the local database
func (c *ProductController) SyncProducts(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SyncProducts: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.sync == nil {
		http.Error(w, "Printify is not configured", http.StatusServiceUnavailable)
		return
	}

	result, err := c.sync.SyncProducts(r.Context())
	if err != nil {
		log.Printf("❌ SyncProducts: %v", err)
		http.Error(w, fmt.Sprintf("Sync failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("❌ SyncProducts: error encoding response: %v", err)
	}
}
