package dto

import "github.com/drfsm113/storefront-client/internal/domain"

// WishlistResponse is the full wishlist returned by GET wishlists/
type WishlistResponse struct {
	Items []domain.WishlistItem `json:"items"`
}

// ToggleWishlistRequest is the payload for POST wishlists/toggle_item/
type ToggleWishlistRequest struct {
	ProductSlug string `json:"product_slug"`
	VariantSlug string `json:"variant_slug,omitempty"`
}

// ToggleWishlistResponse states the item's authoritative membership after
// the toggle. The client adopts it exactly rather than merging.
type ToggleWishlistResponse struct {
	IsInWishlist bool `json:"is_in_wishlist"`
}
