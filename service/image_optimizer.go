package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

const (
	imageCacheDir = "cache/images"
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ImageOptimizer fetches product mockup images and serves optimized JPEG
// renditions, cached on disk. Printify mockups are large PNGs; the cart
// and product grid only need thumbs.
type ImageOptimizer struct {
	client *http.Client
}

// NewImageOptimizer creates an ImageOptimizer and ensures the cache directory exists
func NewImageOptimizer() (*ImageOptimizer, error) {
	if err := os.MkdirAll(imageCacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image cache directory: %w", err)
	}

	return &ImageOptimizer{
		client: &http.Client{Timeout: 20 * time.Second},
	}, nil
}

// cachePath returns the cache file path for a product and size
func cachePath(productID int64, size string) string {
	filename := fmt.Sprintf("product_%d_%s.jpg", productID, size)
	return filepath.Join(imageCacheDir, filename)
}

// GetOptimizedImage returns an optimized JPEG for a product image,
// serving from the disk cache when possible
func (o *ImageOptimizer) GetOptimizedImage(ctx context.Context, productID int64, sourceURL string, size string) ([]byte, error) {
	path := cachePath(productID, size)

	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}

	raw, err := o.fetchImage(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := saveToCache(path, optimized); err != nil {
		// Cache write failure is not fatal; serve the optimized bytes anyway
		log.Printf("⚠️  Failed to cache image for product %d: %v", productID, err)
	}

	return optimized, nil
}

// fetchImage downloads the source image
func (o *ImageOptimizer) fetchImage(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	return data, nil
}

// saveToCache writes an optimized image to the disk cache
func saveToCache(path string, imageData []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(path, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Printf("✓ Image cached: %s", path)
	return nil
}

// OptimizeImage converts an image to JPEG and resizes it for the requested
// rendition. size is "thumb" or "medium"; anything else defaults to medium.
// Using JPEG instead of WebP to avoid a CGO dependency.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	var maxDim int
	var quality int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "medium":
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	// Resize if needed, maintaining aspect ratio
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resized image.Image = img
	if width > maxDim || height > maxDim {
		var newWidth, newHeight int
		if width > height {
			newWidth = maxDim
			newHeight = int(float64(height) * float64(maxDim) / float64(width))
		} else {
			newHeight = maxDim
			newWidth = int(float64(width) * float64(maxDim) / float64(height))
		}

		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, newWidth, newHeight)
		resized = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	return buf.Bytes(), nil
}
