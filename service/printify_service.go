package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"mu-waterwear/models"
)

const printifyBaseURL = "https://api.printify.com/v1"

// PrintifyService is the REST client for the Printify print-on-demand API.
// Printify publishes no Go SDK; this wraps the two endpoints the
// storefront needs: product listing (catalogue sync) and order submission
// (fulfillment).
type PrintifyService struct {
	client   *http.Client
	apiToken string
	shopID   string
	baseURL  string
}

// NewPrintifyService creates a Printify client for one shop
func NewPrintifyService(apiToken, shopID string) (*PrintifyService, error) {
	if apiToken == "" {
		return nil, fmt.Errorf("printify api token is not set")
	}
	if shopID == "" {
		return nil, fmt.Errorf("printify shop id is not set")
	}

	return &PrintifyService{
		client:   &http.Client{Timeout: 30 * time.Second},
		apiToken: apiToken,
		shopID:   shopID,
		baseURL:  printifyBaseURL,
	}, nil
}

// Ensure PrintifyService implements PrintifyServiceInterface
var _ PrintifyServiceInterface = (*PrintifyService)(nil)

func (s *PrintifyService) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to serialize request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("printify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("printify returned %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode printify response: %w", err)
		}
	}

	return nil
}

// ListProducts fetches every product in the shop, following pagination
func (s *PrintifyService) ListProducts(ctx context.Context) ([]models.PrintifyProduct, error) {
	var products []models.PrintifyProduct

	page := 1
	for {
		var list models.PrintifyProductList
		path := fmt.Sprintf("/shops/%s/products.json?page=%d&limit=50", s.shopID, page)
		if err := s.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
			return nil, fmt.Errorf("failed to list products (page %d): %w", page, err)
		}

		products = append(products, list.Data...)

		if list.LastPage == 0 || page >= list.LastPage {
			break
		}
		page++
	}

	log.Printf("📦 Printify: fetched %d products", len(products))
	return products, nil
}

// SubmitOrder submits an order for fulfillment and returns the Printify order id
func (s *PrintifyService) SubmitOrder(ctx context.Context, req *models.PrintifyOrderRequest) (string, error) {
	log.Printf("📦 Printify: submitting order %s with %d lines", req.ExternalID, len(req.LineItems))

	var resp models.PrintifyOrderResponse
	path := fmt.Sprintf("/shops/%s/orders.json", s.shopID)
	if err := s.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return "", fmt.Errorf("failed to submit order %s: %w", req.ExternalID, err)
	}

	log.Printf("✅ Printify: order %s accepted as %s", req.ExternalID, resp.ID)
	return resp.ID, nil
}
