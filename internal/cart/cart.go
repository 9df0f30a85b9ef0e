package cart

import (
	"errors"

	"github.com/okvann/billdesk/internal/catalog"
)

var (
	// ErrStockLimit is returned when adding an item whose cart quantity
	// already equals its stock ceiling. The cart is left unchanged.
	ErrStockLimit = errors.New("stock limit reached")

	// ErrOutOfStock is returned when adding an item with no stock on hand.
	ErrOutOfStock = errors.New("out of stock")
)

// Line is a single cart entry. Quantity never exceeds StockCeiling,
// which is the on-hand stock captured when the line was created.
type Line struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	UnitPrice    int64  `json:"unit_price"` // minor units
	Quantity     int    `json:"quantity"`
	StockCeiling int    `json:"stock_ceiling"`
}

// Subtotal returns UnitPrice * Quantity.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Remaining returns how many more units can be added before the ceiling.
func (l Line) Remaining() int {
	return l.StockCeiling - l.Quantity
}

// Cart is the active cart for a cashier session. Lines are ordered
// newest-first. The zero value is an empty, usable cart.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Restore builds a cart from previously parked lines, copying them so
// the caller's slice stays independent.
func Restore(lines []Line) *Cart {
	c := &Cart{lines: make([]Line, len(lines))}
	copy(c.lines, lines)

	return c
}

// Add puts one unit of item into the cart. An existing line is
// incremented up to its stock ceiling; a new line is created with
// quantity 1 when the item has stock on hand.
func (c *Cart) Add(item catalog.Item) error {
	for i := range c.lines {
		if c.lines[i].ItemID != item.ID {
			continue
		}

		if c.lines[i].Quantity >= c.lines[i].StockCeiling {
			return ErrStockLimit
		}

		c.lines[i].Quantity++

		return nil
	}

	if !item.Sellable() {
		return ErrOutOfStock
	}

	c.lines = append([]Line{{
		ItemID:       item.ID,
		Name:         item.Name,
		UnitPrice:    item.UnitPrice,
		Quantity:     1,
		StockCeiling: item.StockOnHand,
	}}, c.lines...)

	return nil
}

// Remove takes one unit of the item out of the cart, dropping the line
// entirely when its quantity reaches zero. Absent items are a no-op.
func (c *Cart) Remove(itemID string) {
	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}

		c.lines[i].Quantity--
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}

		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines, newest-first.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)

	return out
}

// Snapshot returns an independent copy of the cart. Mutating the
// snapshot never affects the live cart and vice versa.
func (c *Cart) Snapshot() *Cart {
	return Restore(c.lines)
}

// Total returns the sum of line subtotals. It is always derived from
// the lines, never cached.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}

	return total
}
