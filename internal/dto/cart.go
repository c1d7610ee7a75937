package dto

import "github.com/drfsm113/storefront-client/internal/domain"

// CartResponse is the authoritative cart snapshot returned by every cart
// endpoint. Totals are server-computed and replace local state verbatim.
type CartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
	TotalItems int               `json:"total_items"`
}

// AddToCartRequest is the payload for POST carts/add_to_cart/.
// Exactly one of ProductSlug or ProductVariantSlug is set.
type AddToCartRequest struct {
	Quantity           int    `json:"quantity"`
	ProductSlug        string `json:"product_slug,omitempty"`
	ProductVariantSlug string `json:"product_variant_slug,omitempty"`
}

// UpdateCartItemRequest is the payload for PUT carts/update_cart_item/
type UpdateCartItemRequest struct {
	Slug     string `json:"slug"`
	Quantity int    `json:"quantity"`
}

// RemoveFromCartRequest is the payload for POST carts/remove_from_cart/
type RemoveFromCartRequest struct {
	Slug string `json:"slug"`
}
