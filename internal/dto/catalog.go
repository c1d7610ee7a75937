package dto

// Category is a product category node
type Category struct {
	Slug     string     `json:"slug"`
	Name     string     `json:"name"`
	Parent   string     `json:"parent,omitempty"`
	Children []Category `json:"children,omitempty"`
}

// Brand is a product brand
type Brand struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Attribute is a configurable product attribute (metal, stone, size, ...)
type Attribute struct {
	Slug   string   `json:"slug"`
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}

// ProductVariant is a purchasable variant of a product
type ProductVariant struct {
	Slug       string            `json:"slug"`
	SKU        string            `json:"sku,omitempty"`
	Price      float64           `json:"price"`
	Stock      int               `json:"stock"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Product is a catalog entry
type Product struct {
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	Brand       string           `json:"brand,omitempty"`
	Price       float64          `json:"price"`
	Images      []string         `json:"images,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	IsActive    bool             `json:"is_active"`
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
	Page     int
	PageSize int
}

// ProductListResponse is a paginated product listing
type ProductListResponse struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// Review is a product review
type Review struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Author    string `json:"author,omitempty"`
}
