package view

type ProductCard struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Price    string `json:"price"`
	InStock  bool   `json:"inStock"`
}

type ProductVariant struct {
	ID      string `json:"id"`
	SKU     string `json:"sku"`
	Length  string `json:"length,omitempty"` // board length, e.g. "10'6"
	Volume  string `json:"volume,omitempty"` // liters
	Price   string `json:"price"`
	Stock   int    `json:"stock"`
	InStock bool   `json:"inStock"`
}

type ProductDetail struct {
	ID          string           `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Images      []string         `json:"images"`
	Price       string           `json:"price"`
	Variants    []ProductVariant `json:"variants"`
}
