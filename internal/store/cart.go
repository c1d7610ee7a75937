package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/drfsm113/storefront-client/internal/domain"
	"github.com/drfsm113/storefront-client/internal/dto"
)

const cartBasePath = "api/v1/client/carts/"

// apiClient is the slice of the authenticated transport the caches use
type apiClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
}

// Cart is the optimistic client-side cart cache. Every mutation patches
// local state synchronously before its network call, then reconciles with
// the server's authoritative snapshot: the response replaces items and
// totals wholesale, and a failed call rolls state back to the pre-mutation
// snapshot and notifies.
//
// Responses are sequenced per mutation; a slow response that arrives after
// a newer one has been applied is discarded instead of regressing state.
type Cart struct {
	mu    sync.Mutex
	state domain.CartState

	// seq numbers mutations; applied is the sequence of the last
	// authoritative snapshot taken in.
	seq     uint64
	applied uint64

	api    apiClient
	notify Notifier
	log    *zap.Logger
}

// NewCart creates a cart cache over the authenticated transport
func NewCart(api apiClient, notify Notifier, log *zap.Logger) *Cart {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cart{api: api, notify: notify, log: log}
}

// State returns a snapshot of the cart
func (c *Cart) State() domain.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() domain.CartState {
	out := c.state
	out.Items = append([]domain.CartItem(nil), c.state.Items...)
	return out
}

// begin stamps a new mutation and captures the rollback snapshot
func (c *Cart) begin() (uint64, domain.CartState) {
	c.seq++
	return c.seq, c.snapshotLocked()
}

// applyResponse takes in an authoritative server snapshot, unless a newer
// one already landed. Totals come from the server verbatim; the client
// never recomputes them once a server value exists for the snapshot.
func (c *Cart) applyResponse(seq uint64, resp *dto.CartResponse) {
	if seq <= c.applied {
		c.log.Debug("discarding stale cart response", zap.Uint64("seq", seq))
		return
	}
	c.applied = seq
	c.state.Items = resp.Items
	c.state.TotalPrice = resp.TotalPrice
	c.state.TotalItems = resp.TotalItems
	c.state.Err = ""
}

// rollback restores the pre-mutation snapshot unless a newer authoritative
// snapshot has already replaced it
func (c *Cart) rollback(seq uint64, snapshot domain.CartState, err error, message string) {
	if seq > c.applied {
		c.state = snapshot
	}
	c.state.Err = err.Error()
	if c.notify != nil {
		c.notify.Notify(message, SeverityError)
	}
}

// recomputeLocked refreshes the derived totals from the local items. Only
// used for optimistic patches, never after a server response.
func (c *Cart) recomputeLocked() {
	c.state.TotalItems = domain.CountItems(c.state.Items)
	c.state.TotalPrice = domain.SumLineTotals(c.state.Items)
}

// Fetch replaces the cart with the server's current snapshot
func (c *Cart) Fetch(ctx context.Context) (domain.CartState, error) {
	c.mu.Lock()
	seq, _ := c.begin()
	c.state.Loading = true
	c.mu.Unlock()

	var resp dto.CartResponse
	err := c.api.Get(ctx, cartBasePath+"my_cart/", &resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	if err != nil {
		c.state.Err = err.Error()
		return c.snapshotLocked(), err
	}
	c.applyResponse(seq, &resp)
	return c.snapshotLocked(), nil
}

// Add puts quantity of a product (or variant) into the cart. Exactly one
// of productSlug/variantSlug is sent, matching the remote API's contract.
func (c *Cart) Add(ctx context.Context, productSlug, variantSlug string, quantity int) (domain.CartState, error) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	seq, snapshot := c.begin()
	c.applyOptimisticAdd(productSlug, variantSlug, quantity)
	c.mu.Unlock()

	req := dto.AddToCartRequest{Quantity: quantity}
	if variantSlug != "" {
		req.ProductVariantSlug = variantSlug
	} else {
		req.ProductSlug = productSlug
	}

	var resp dto.CartResponse
	err := c.api.Post(ctx, cartBasePath+"add_to_cart/", req, &resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.rollback(seq, snapshot, err, "Could not add the item to your cart")
		return c.snapshotLocked(), err
	}
	c.applyResponse(seq, &resp)
	return c.snapshotLocked(), nil
}

func (c *Cart) applyOptimisticAdd(productSlug, variantSlug string, quantity int) {
	ref := productSlug
	if variantSlug != "" {
		ref = variantSlug
	}
	for i := range c.state.Items {
		it := &c.state.Items[i]
		if it.Product.Slug == productSlug &&
			((variantSlug == "" && it.Variant == nil) ||
				(it.Variant != nil && it.Variant.Slug == variantSlug)) {
			it.Quantity += quantity
			it.LineTotal = it.UnitPrice * float64(it.Quantity)
			c.recomputeLocked()
			return
		}
	}
	// Provisional line: price unknown until the server answers.
	item := domain.CartItem{
		Slug:     ref,
		Product:  domain.ProductRef{Slug: productSlug},
		Quantity: quantity,
	}
	if variantSlug != "" {
		item.Variant = &domain.ProductRef{Slug: variantSlug}
	}
	c.state.Items = append(c.state.Items, item)
	c.recomputeLocked()
}

// UpdateItem sets a cart line's quantity. Quantities below 1 are clamped
// before the call; a decrement below one is never sent.
func (c *Cart) UpdateItem(ctx context.Context, slug string, quantity int) (domain.CartState, error) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	seq, snapshot := c.begin()
	for i := range c.state.Items {
		if c.state.Items[i].Slug == slug {
			c.state.Items[i].Quantity = quantity
			c.state.Items[i].LineTotal = c.state.Items[i].UnitPrice * float64(quantity)
			break
		}
	}
	c.recomputeLocked()
	c.mu.Unlock()

	var resp dto.CartResponse
	err := c.api.Put(ctx, cartBasePath+"update_cart_item/", dto.UpdateCartItemRequest{Slug: slug, Quantity: quantity}, &resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.rollback(seq, snapshot, err, "Could not update your cart")
		return c.snapshotLocked(), err
	}
	c.applyResponse(seq, &resp)
	return c.snapshotLocked(), nil
}

// Remove deletes a cart line
func (c *Cart) Remove(ctx context.Context, slug string) (domain.CartState, error) {
	c.mu.Lock()
	seq, snapshot := c.begin()
	items := c.state.Items[:0:0]
	for _, it := range c.state.Items {
		if it.Slug != slug {
			items = append(items, it)
		}
	}
	c.state.Items = items
	c.recomputeLocked()
	c.mu.Unlock()

	var resp dto.CartResponse
	err := c.api.Post(ctx, cartBasePath+"remove_from_cart/", dto.RemoveFromCartRequest{Slug: slug}, &resp)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.rollback(seq, snapshot, err, "Could not remove the item from your cart")
		return c.snapshotLocked(), err
	}
	c.applyResponse(seq, &resp)
	return c.snapshotLocked(), nil
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) (domain.CartState, error) {
	c.mu.Lock()
	seq, snapshot := c.begin()
	c.state.Items = nil
	c.state.TotalItems = 0
	c.state.TotalPrice = 0
	c.mu.Unlock()

	err := c.api.Post(ctx, cartBasePath+"clear_cart/", struct{}{}, nil)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.rollback(seq, snapshot, err, "Could not clear your cart")
		return c.snapshotLocked(), err
	}
	c.applyResponse(seq, &dto.CartResponse{})
	return c.snapshotLocked(), nil
}

// Reset drops all local cart state (logout)
func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = domain.CartState{}
	c.applied = c.seq
}
