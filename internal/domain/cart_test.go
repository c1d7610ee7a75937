package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountItems(t *testing.T) {
	assert.Equal(t, 0, CountItems(nil))
	assert.Equal(t, 5, CountItems([]CartItem{
		{Quantity: 2},
		{Quantity: 3},
	}))
}

func TestSumLineTotals(t *testing.T) {
	assert.Equal(t, 0.0, SumLineTotals(nil))
	assert.Equal(t, 360.0, SumLineTotals([]CartItem{
		{LineTotal: 240},
		{LineTotal: 120},
	}))
}

func TestWishlistItemMatches(t *testing.T) {
	plain := WishlistItem{Product: ProductRef{Slug: "eternity-ring"}}
	variant := WishlistItem{
		Product: ProductRef{Slug: "eternity-ring"},
		Variant: &ProductRef{Slug: "eternity-ring-gold"},
	}

	tests := []struct {
		name        string
		item        WishlistItem
		productSlug string
		variantSlug string
		want        bool
	}{
		{"product only", plain, "eternity-ring", "", true},
		{"wrong product", plain, "solitaire-pendant", "", false},
		{"variant requested on plain item", plain, "eternity-ring", "eternity-ring-gold", false},
		{"variant match", variant, "eternity-ring", "eternity-ring-gold", true},
		{"wrong variant", variant, "eternity-ring", "eternity-ring-silver", false},
		{"no variant requested matches variant item", variant, "eternity-ring", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Matches(tt.productSlug, tt.variantSlug))
		})
	}
}

func TestSessionIsAuthenticated(t *testing.T) {
	s := Session{}
	assert.False(t, s.IsAuthenticated())

	s.AccessToken = "access-1"
	assert.True(t, s.IsAuthenticated())
}
