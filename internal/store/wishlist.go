package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/drfsm113/storefront-client/internal/domain"
	"github.com/drfsm113/storefront-client/internal/dto"
)

const wishlistBasePath = "api/v1/client/wishlists/"

// Wishlist is the optimistic client-side wishlist cache. Toggle flips
// membership locally before the network call; the server's reply states the
// authoritative membership and local state is set to match it exactly
// rather than merged, so two racing tabs converge on what the server decided.
type Wishlist struct {
	mu    sync.Mutex
	state domain.WishlistState

	seq     uint64
	applied uint64

	api    apiClient
	notify Notifier
	log    *zap.Logger
}

// NewWishlist creates a wishlist cache over the authenticated transport
func NewWishlist(api apiClient, notify Notifier, log *zap.Logger) *Wishlist {
	if log == nil {
		log = zap.NewNop()
	}
	return &Wishlist{api: api, notify: notify, log: log}
}

// State returns a snapshot of the wishlist
func (w *Wishlist) State() domain.WishlistState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wishlist) snapshotLocked() domain.WishlistState {
	out := w.state
	out.Items = append([]domain.WishlistItem(nil), w.state.Items...)
	return out
}

// Contains reports current membership for (productSlug, variantSlug)
func (w *Wishlist) Contains(productSlug, variantSlug string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOfLocked(productSlug, variantSlug) >= 0
}

func (w *Wishlist) indexOfLocked(productSlug, variantSlug string) int {
	for i := range w.state.Items {
		if w.state.Items[i].Matches(productSlug, variantSlug) {
			return i
		}
	}
	return -1
}

// Fetch replaces the wishlist with the server's current items
func (w *Wishlist) Fetch(ctx context.Context) (domain.WishlistState, error) {
	w.mu.Lock()
	w.seq++
	seq := w.seq
	w.state.Loading = true
	w.mu.Unlock()

	var resp dto.WishlistResponse
	err := w.api.Get(ctx, wishlistBasePath, &resp)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Loading = false
	if err != nil {
		w.state.Err = err.Error()
		return w.snapshotLocked(), err
	}
	if seq > w.applied {
		w.applied = seq
		w.state.Items = resp.Items
		w.state.TotalItems = len(resp.Items)
		w.state.Err = ""
	}
	return w.snapshotLocked(), nil
}

// Toggle flips membership for (productSlug, variantSlug): the flip is
// applied locally first, then reconciled with the server's stated
// membership. A failed call reverts the flip and notifies.
func (w *Wishlist) Toggle(ctx context.Context, productSlug, variantSlug string) (domain.WishlistState, error) {
	w.mu.Lock()
	w.seq++
	seq := w.seq
	snapshot := w.snapshotLocked()
	w.flipLocked(productSlug, variantSlug)
	w.mu.Unlock()

	req := dto.ToggleWishlistRequest{ProductSlug: productSlug, VariantSlug: variantSlug}
	var resp dto.ToggleWishlistResponse
	err := w.api.Post(ctx, wishlistBasePath+"toggle_item/", req, &resp)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		if seq > w.applied {
			w.state = snapshot
		}
		w.state.Err = err.Error()
		if w.notify != nil {
			w.notify.Notify("Could not update your wishlist", SeverityError)
		}
		return w.snapshotLocked(), err
	}

	if seq > w.applied {
		w.applied = seq
		w.reconcileLocked(productSlug, variantSlug, resp.IsInWishlist)
		w.state.Err = ""
	}
	return w.snapshotLocked(), nil
}

// flipLocked applies the optimistic membership flip
func (w *Wishlist) flipLocked(productSlug, variantSlug string) {
	if idx := w.indexOfLocked(productSlug, variantSlug); idx >= 0 {
		w.state.Items = append(w.state.Items[:idx], w.state.Items[idx+1:]...)
	} else {
		w.state.Items = append(w.state.Items, newWishlistItem(productSlug, variantSlug))
	}
	w.state.TotalItems = len(w.state.Items)
}

// reconcileLocked forces membership to the server's verdict
func (w *Wishlist) reconcileLocked(productSlug, variantSlug string, inWishlist bool) {
	idx := w.indexOfLocked(productSlug, variantSlug)
	switch {
	case inWishlist && idx < 0:
		w.state.Items = append(w.state.Items, newWishlistItem(productSlug, variantSlug))
	case !inWishlist && idx >= 0:
		w.state.Items = append(w.state.Items[:idx], w.state.Items[idx+1:]...)
	}
	w.state.TotalItems = len(w.state.Items)
}

func newWishlistItem(productSlug, variantSlug string) domain.WishlistItem {
	item := domain.WishlistItem{Product: domain.ProductRef{Slug: productSlug}}
	if variantSlug != "" {
		item.Variant = &domain.ProductRef{Slug: variantSlug}
	}
	return item
}

// Reset drops all local wishlist state (logout)
func (w *Wishlist) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = domain.WishlistState{}
	w.applied = w.seq
}
