package cart

import (
	"testing"

	"restaurant-pos/internal/domain"
)

var (
	burger = domain.MenuItem{ID: 1, Name: "Burger", Category: "Mains", Price: 10.00}
	fries  = domain.MenuItem{ID: 2, Name: "Fries", Category: "Sides", Price: 3.50}
)

func TestAddItemCreatesPositionalLines(t *testing.T) {
	c := New()
	c.AddItem(burger)
	c.AddItem(burger)

	// Two clicks on the same item are two lines, not one line with qty 2.
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	for i, ln := range c.Lines() {
		if ln.Quantity != 1 {
			t.Errorf("line %d quantity = %d, want 1", i, ln.Quantity)
		}
		if ln.MenuItemID != burger.ID || ln.Name != "Burger" || ln.Price != 10.00 {
			t.Errorf("line %d did not copy the menu item verbatim: %+v", i, ln)
		}
	}
}

func TestAdjustQuantity(t *testing.T) {
	tests := []struct {
		name  string
		index int
		delta int
		want  []int // quantities after the adjustment
	}{
		{"increment", 0, 1, []int{2, 1}},
		{"decrement floors at one", 0, -5, []int{1, 1}},
		{"negative index is a no-op", -1, 3, []int{1, 1}},
		{"index past the end is a no-op", 2, 3, []int{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddItem(burger)
			c.AddItem(fries)
			c.AdjustQuantity(tt.index, tt.delta)
			for i, ln := range c.Lines() {
				if ln.Quantity != tt.want[i] {
					t.Errorf("line %d quantity = %d, want %d", i, ln.Quantity, tt.want[i])
				}
			}
		})
	}
}

func TestTotal(t *testing.T) {
	c := New()
	c.AddItem(burger)
	c.AddItem(fries)
	c.AdjustQuantity(1, 1) // fries x2

	if got := c.Total().StringFixed(2); got != "17.00" {
		t.Errorf("Total() = %s, want 17.00", got)
	}
}

func TestTotalRoundsToTwoDecimals(t *testing.T) {
	c := New()
	c.AddItem(domain.MenuItem{ID: 3, Name: "Soda", Price: 0.10})
	c.AdjustQuantity(0, 2) // 0.10 x 3

	if got := c.Total().StringFixed(2); got != "0.30" {
		t.Errorf("Total() = %s, want 0.30", got)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(burger)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if got := c.Total().StringFixed(2); got != "0.00" {
		t.Errorf("Total() after Clear = %s, want 0.00", got)
	}
}
