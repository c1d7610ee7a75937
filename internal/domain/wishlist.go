package domain

// WishlistItem is one wishlist entry
type WishlistItem struct {
	Product ProductRef  `json:"product"`
	Variant *ProductRef `json:"variant,omitempty"`
}

// Matches reports whether the entry refers to (productSlug, variantSlug).
// The variant is only compared when the caller asks for one; entries without
// a variant match on product slug alone.
func (w *WishlistItem) Matches(productSlug, variantSlug string) bool {
	if w.Product.Slug != productSlug {
		return false
	}
	if variantSlug == "" {
		return true
	}
	return w.Variant != nil && w.Variant.Slug == variantSlug
}

// WishlistState is the client-side wishlist snapshot
type WishlistState struct {
	Items      []WishlistItem
	TotalItems int
	Loading    bool
	Err        string
}
