package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	pkgerrors "github.com/jerseystore/jerseystore-backend/pkg/errors"
	"github.com/jerseystore/jerseystore-backend/pkg/kv"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// LineItem is one (product, size) pairing in the cart. The product is a
// snapshot taken at add time; the catalog does not mutate during a session.
type LineItem struct {
	ID       string           `json:"id"`
	Product  *catalog.Product `json:"product"`
	Size     string           `json:"size"`
	Quantity int              `json:"quantity"`
}

// Listener receives a snapshot after every successful mutation.
type Listener func(items []LineItem)

// Engine owns the mutable cart state for one session. Items stay unique by
// (product id, size), insertion-ordered, and every line item's quantity is
// bounded by the product's stock for its size. State is mirrored to the
// key-value store after each mutation; persistence is best-effort and never
// rolls back the in-memory commit.
type Engine struct {
	mu        sync.Mutex
	items     []LineItem
	store     kv.Store
	key       string
	logg      *logger.Logger
	listeners []Listener
}

// NewEngine hydrates an engine from the persisted key. A malformed payload
// is logged and discarded; storage problems degrade to an empty session
// cart rather than failing.
func NewEngine(ctx context.Context, store kv.Store, key string, logg *logger.Logger) *Engine {
	e := &Engine{store: store, key: key, logg: logg}
	e.hydrate(ctx)
	return e
}

func (e *Engine) hydrate(ctx context.Context) {
	if e.store == nil || e.key == "" {
		return
	}
	raw, err := e.store.Get(ctx, e.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) && e.logg != nil {
			e.logg.Warn(e.logg.WithField(ctx, "cart_key", e.key), "cart hydrate read failed")
		}
		return
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if e.logg != nil {
			e.logg.Warn(e.logg.WithField(ctx, "cart_key", e.key), "discarding malformed persisted cart")
		}
		_ = e.store.Del(ctx, e.key)
		return
	}

	// Drop records that violate the line-item invariants rather than
	// carrying corrupt state into the session.
	valid := items[:0]
	for _, item := range items {
		if item.Product == nil || item.Quantity < 1 || item.Size == "" {
			continue
		}
		// Stored quantities must honor the stock bound too; a stale or
		// tampered payload is clamped rather than trusted.
		if available := item.Product.StockFor(item.Size); item.Quantity > available {
			if available < 1 {
				continue
			}
			item.Quantity = available
		}
		if item.ID == "" {
			item.ID = item.Product.ID
		}
		valid = append(valid, item)
	}
	e.items = valid
}

// AddItem merges quantity into the (product, size) line item, appending a
// new line when none exists. The stock guard is absolute: the resulting
// quantity never exceeds the product's stock for that size.
func (e *Engine) AddItem(ctx context.Context, product *catalog.Product, size string, quantity int) (int, error) {
	if product == nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if size == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}
	if quantity < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	e.mu.Lock()
	available := product.StockFor(size)
	idx := e.indexOf(product.ID, size)
	current := 0
	if idx >= 0 {
		current = e.items[idx].Quantity
	}
	if current+quantity > available {
		e.mu.Unlock()
		return current, &StockExceededError{ProductID: product.ID, Size: size, Available: available}
	}

	var resulting int
	if idx >= 0 {
		e.items[idx].Quantity += quantity
		resulting = e.items[idx].Quantity
	} else {
		e.items = append(e.items, LineItem{ID: product.ID, Product: product, Size: size, Quantity: quantity})
		resulting = quantity
	}
	e.persistLocked(ctx)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snapshot)
	return resulting, nil
}

// UpdateQuantity replaces the quantity for the matching line item. A
// non-positive quantity removes the item; an absent key is a successful
// no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, productID, size string, quantity int) error {
	if quantity <= 0 {
		return e.RemoveItem(ctx, productID, size)
	}

	e.mu.Lock()
	idx := e.indexOf(productID, size)
	if idx < 0 {
		e.mu.Unlock()
		return nil
	}

	item := e.items[idx]
	if available := item.Product.StockFor(size); quantity > available {
		e.mu.Unlock()
		return &StockExceededError{ProductID: productID, Size: size, Available: available}
	}
	if item.Quantity == quantity {
		e.mu.Unlock()
		return nil
	}

	e.items[idx].Quantity = quantity
	e.persistLocked(ctx)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snapshot)
	return nil
}

// RemoveItem deletes the matching line item; removing an absent key is not
// an error.
func (e *Engine) RemoveItem(ctx context.Context, productID, size string) error {
	e.mu.Lock()
	idx := e.indexOf(productID, size)
	if idx < 0 {
		e.mu.Unlock()
		return nil
	}

	e.items = append(e.items[:idx], e.items[idx+1:]...)
	e.persistLocked(ctx)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snapshot)
	return nil
}

// Clear empties the cart. Called by the checkout flow after the order
// notification was delivered.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	e.items = nil
	e.persistLocked(ctx)
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snapshot)
	return nil
}

// Items returns a copy of the current line items in insertion order.
func (e *Engine) Items() []LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// TotalItems sums the quantities across all line items.
func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, item := range e.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price_bdt * quantity across all line items.
func (e *Engine) TotalPrice() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, item := range e.items {
		total += item.Product.PriceBDT * item.Quantity
	}
	return total
}

// Subscribe registers a listener notified synchronously after each
// successful mutation.
func (e *Engine) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

func (e *Engine) indexOf(productID, size string) int {
	for i, item := range e.items {
		if item.ID == productID && item.Size == size {
			return i
		}
	}
	return -1
}

func (e *Engine) snapshotLocked() []LineItem {
	out := make([]LineItem, len(e.items))
	copy(out, e.items)
	return out
}

// persistLocked mirrors the in-memory state to storage. Failures are logged
// and swallowed: durability is best-effort, the in-session state is already
// committed.
func (e *Engine) persistLocked(ctx context.Context) {
	if e.store == nil || e.key == "" {
		return
	}
	items := e.items
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		if e.logg != nil {
			e.logg.Error(ctx, "cart serialize failed", err)
		}
		return
	}
	if err := e.store.Set(ctx, e.key, string(raw)); err != nil {
		if e.logg != nil {
			e.logg.Warn(e.logg.WithField(ctx, "cart_key", e.key), "cart persist failed, continuing session-only")
		}
	}
}

func (e *Engine) notify(snapshot []LineItem) {
	e.mu.Lock()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}
