package models

// Product represents a storefront product synced from Printify
type Product struct {
	ID          int64  `json:"id"`
	PrintifyID  string `json:"printifyId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"` // apparel, accessories, gear
	Price       int64  `json:"price"`    // cents, lowest enabled variant price
	ImageURL    string `json:"imageUrl"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
}

// ProductVariant represents a purchasable variant (size/color) of a product
type ProductVariant struct {
	ID                int64  `json:"id"`
	ProductID         int64  `json:"productId"`
	PrintifyVariantID int64  `json:"printifyVariantId"`
	Size              string `json:"size,omitempty"`
	Color             string `json:"color,omitempty"`
	SKU               string `json:"sku"`
	Price             int64  `json:"price"` // cents
	InStock           bool   `json:"inStock"`
}

// ProductResponse is a product with its variants
type ProductResponse struct {
	Product
	Variants []ProductVariant `json:"variants"`
}

// SyncResult summarizes a catalogue sync run
type SyncResult struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
