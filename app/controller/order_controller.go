package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"mu-waterwear/repository"
	"mu-waterwear/service"
)

// OrderController handles HTTP requests for placed orders and receipts
type OrderController struct {
	repository repository.OrderRepositoryInterface
	receipts   *service.ReceiptService
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface, receipts *service.ReceiptService) *OrderController {
	return &OrderController{
		repository: repo,
		receipts:   receipts,
	}
}

// orderReference extracts the reference from paths like /orders/{ref} and
// /orders/{ref}/receipt
func orderReference(path string) string {
	rest := strings.TrimPrefix(path, "/orders/")
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		rest = rest[:idx]
	}
	return rest
}

// GetOrder handles GET /orders/{ref}
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reference := orderReference(r.URL.Path)
	if reference == "" {
		http.Error(w, "Order reference is required", http.StatusBadRequest)
		return
	}

	order, err := c.repository.GetByReference(r.Context(), reference)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetOrder: %v", err)
		http.Error(w, "Failed to get order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(order); err != nil {
		log.Printf("❌ GetOrder: error encoding response: %v", err)
	}
}

// GetReceipt handles GET /orders/{ref}/receipt
// Renders the printable HTML receipt used both by customers and as the
// source page for PDF generation
func (c *OrderController) GetReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reference := orderReference(r.URL.Path)
	order, err := c.repository.GetByReference(r.Context(), reference)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	html, err := c.receipts.RenderHTML(order)
	if err != nil {
		log.Printf("❌ GetReceipt: %v", err)
		http.Error(w, "Failed to render receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

// GetReceiptPDF handles GET /orders/{ref}/receipt.pdf
func (c *OrderController) GetReceiptPDF(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetReceiptPDF: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reference := orderReference(r.URL.Path)
	if _, err := c.repository.GetByReference(r.Context(), reference); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	pdf, err := c.receipts.GeneratePDF(r.Context(), reference)
	if err != nil {
		log.Printf("❌ GetReceiptPDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%s.pdf", reference))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
