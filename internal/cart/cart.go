// Package cart holds the order-building session state: an ordered sequence
// of menu selections with per-line quantities and a running total.
package cart

import (
	"github.com/shopspring/decimal"

	"restaurant-pos/internal/domain"
)

// Line is one cart entry. Lines are positional: adding the same menu item
// twice creates two independent lines rather than merging quantities.
type Line struct {
	MenuItemID int     `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Cart accumulates selections for exactly one order-building session. It is
// not safe for concurrent use; the Store serializes access per session.
type Cart struct {
	lines []Line
}

func New() *Cart { return &Cart{} }

// AddItem appends a new line with quantity 1.
func (c *Cart) AddItem(item domain.MenuItem) {
	c.lines = append(c.lines, Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   1,
	})
}

// AdjustQuantity changes the line at index by delta, clamping the result at
// a minimum of 1. An out-of-range index is a no-op, not an error.
func (c *Cart) AdjustQuantity(index, delta int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	q := c.lines[index].Quantity + delta
	if q < 1 {
		q = 1
	}
	c.lines[index].Quantity = q
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// Total is the sum of price x quantity over all lines, rounded to two
// decimal places.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, ln := range c.lines {
		price := decimal.NewFromFloat(ln.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}
	return total.Round(2)
}

// Clear empties the cart. Called after a successful submission or an
// explicit reset.
func (c *Cart) Clear() { c.lines = nil }
