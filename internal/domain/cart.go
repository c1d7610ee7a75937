package domain

// ProductRef references a product or variant by its stable slug
type ProductRef struct {
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
}

// CartItem is one line entry in the cart. Slug is the cart line's own slug,
// used by the update/remove endpoints.
type CartItem struct {
	Slug      string      `json:"slug"`
	Product   ProductRef  `json:"product"`
	Variant   *ProductRef `json:"variant,omitempty"`
	Quantity  int         `json:"quantity"`
	UnitPrice float64     `json:"unit_price"`
	LineTotal float64     `json:"line_total"`
}

// CartState is the client-side cart snapshot
type CartState struct {
	Items      []CartItem
	TotalPrice float64
	TotalItems int
	Loading    bool
	Err        string
}

// CountItems sums line-item quantities
func CountItems(items []CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// SumLineTotals adds up the known line totals
func SumLineTotals(items []CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal
	}
	return total
}
