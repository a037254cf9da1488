package cart

import (
	"github.com/zestraw/storefront-backend/pkg/types"
)

// LineItem is one cart line. Lines merge on (ProductID, Variant); the same
// product in two sizes stays two independent lines.
type LineItem struct {
	ProductID      string                       `json:"id"`
	Name           string                       `json:"name"`
	PriceCents     int64                        `json:"priceCents"`
	Quantity       int64                        `json:"quantity"`
	Image          string                       `json:"image"`
	Category       string                       `json:"category"`
	Variant        string                       `json:"size,omitempty"`
	Sustainability *types.SustainabilityMetrics `json:"sustainabilityMetrics,omitempty"`
}

// Key returns the merge identity for this line.
func (i LineItem) Key() Key {
	return Key{ProductID: i.ProductID, Variant: i.Variant}
}

// Key identifies a cart line.
type Key struct {
	ProductID string
	Variant   string
}

// Cart holds the lines in insertion order. All mutations are pure slice
// operations; persistence is layered on top by the service.
type Cart struct {
	items []LineItem
}

// NewCart builds a cart from previously stored lines.
func NewCart(items []LineItem) *Cart {
	c := &Cart{}
	if len(items) > 0 {
		c.items = append(c.items, items...)
	}
	return c
}

// Add inserts the item or merges it into an existing line with the same key.
// On merge the descriptor fields (name, price, image, category, metrics) are
// replaced by the incoming item and the quantities are summed. A non-positive
// quantity counts as 1.
func (c *Cart) Add(item LineItem, quantity int64) {
	if quantity <= 0 {
		quantity = 1
	}
	key := item.Key()
	for idx, existing := range c.items {
		if existing.Key() == key {
			item.Quantity = existing.Quantity + quantity
			c.items[idx] = item
			return
		}
	}
	item.Quantity = quantity
	c.items = append(c.items, item)
}

// Remove deletes the line with the given key. Removing an absent line is a
// no-op, so removal is idempotent.
func (c *Cart) Remove(productID, variant string) {
	key := Key{ProductID: productID, Variant: variant}
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Key() != key {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// SetQuantity overwrites the quantity on an existing line. A quantity of zero
// or below removes the line. Lines that do not exist are left untouched.
func (c *Cart) SetQuantity(productID string, quantity int64, variant string) {
	if quantity <= 0 {
		c.Remove(productID, variant)
		return
	}
	key := Key{ProductID: productID, Variant: variant}
	for idx, item := range c.items {
		if item.Key() == key {
			c.items[idx].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// SubtotalCents is the sum of price*quantity across all lines.
func (c *Cart) SubtotalCents() int64 {
	var subtotal int64
	for _, item := range c.items {
		subtotal += item.PriceCents * item.Quantity
	}
	return subtotal
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}
