package view

type CartItem struct {
	VariantID   string `json:"variantId"`
	ProductName string `json:"productName"`
	ProductSlug string `json:"productSlug"`
	SKU         string `json:"sku"`
	Qty         int    `json:"qty"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

type CartPage struct {
	Items    []CartItem `json:"items"`
	Count    int        `json:"count"`
	Subtotal string     `json:"subtotal"`
	Total    string     `json:"total"`
}
