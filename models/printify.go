package models

// PrintifyProduct is a product document as returned by the Printify API
type PrintifyProduct struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Images      []PrintifyImage   `json:"images"`
	Variants    []PrintifyVariant `json:"variants"`
	Visible     bool              `json:"visible"`
}

// PrintifyImage is a product mockup image
type PrintifyImage struct {
	Src       string `json:"src"`
	IsDefault bool   `json:"is_default"`
}

// PrintifyVariant is a product variant as returned by the Printify API.
// Price is in cents.
type PrintifyVariant struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	SKU         string `json:"sku"`
	Price       int64  `json:"price"`
	IsEnabled   bool   `json:"is_enabled"`
	IsAvailable bool   `json:"is_available"`
}

// PrintifyProductList is the paginated product listing envelope
type PrintifyProductList struct {
	CurrentPage int               `json:"current_page"`
	LastPage    int               `json:"last_page"`
	Data        []PrintifyProduct `json:"data"`
}

// PrintifyOrderRequest is the order submission payload
type PrintifyOrderRequest struct {
	ExternalID     string             `json:"external_id"`
	LineItems      []PrintifyLineItem `json:"line_items"`
	ShippingMethod int                `json:"shipping_method"`
	SendToShipping bool               `json:"send_shipping_notification"`
	AddressTo      PrintifyAddress    `json:"address_to"`
}

// PrintifyLineItem is one line of an order submission
type PrintifyLineItem struct {
	ProductID string `json:"product_id"`
	VariantID int64  `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// PrintifyAddress is the shipping destination for an order
type PrintifyAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country"`
	Region    string `json:"region,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

// PrintifyOrderResponse is the order submission response
type PrintifyOrderResponse struct {
	ID string `json:"id"`
}
