// Package cart implements the shopping cart: an ordered sequence of
// product snapshots with quantities, mirrored to durable storage per
// session.
package cart

import (
	"github.com/google/uuid"

	"github.com/parfumerie-dz/storefront/internal/catalog"
)

// LineItem is one cart entry: a snapshot of the product at the time it
// was added, plus the selected quantity. Prices are frozen in the
// snapshot; later catalog edits do not reprice a cart.
type LineItem struct {
	catalog.Product
	Quantity int32 `json:"quantity"`
}

// Cart is an ordered collection of line items. The zero value is an
// empty, usable cart.
type Cart struct {
	Items []LineItem
}

// Add inserts the product with quantity 1, or bumps the quantity by one
// when the product is already present. The line keeps its position either
// way. Stock is advisory only and never blocks an add.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.Items {
		if c.Items[i].ID == p.ID {
			c.SetQuantity(p.ID, c.Items[i].Quantity+1)
			return
		}
	}
	c.Items = append(c.Items, LineItem{Product: p, Quantity: 1})
}

// SetQuantity replaces the quantity of the line with the given product
// ID. A quantity of zero or less removes the line; an unknown ID is a
// benign no-op.
func (c *Cart) SetQuantity(id uuid.UUID, quantity int32) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line with the given product ID, preserving the order
// of the rest. Removing an absent ID is a no-op.
func (c *Cart) Remove(id uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Count returns the total number of units across all lines. Recomputed
// from the items on every call.
func (c *Cart) Count() int32 {
	var n int32
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal returns the merchandise value of the cart: the sum over all
// lines of the captured unit price times quantity.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, item := range c.Items {
		sum += item.Price * int64(item.Quantity)
	}
	return sum
}
