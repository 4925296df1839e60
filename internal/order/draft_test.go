package order

import (
	"errors"
	"testing"

	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/domain"
)

func sampleLines() []cart.Line {
	c := cart.New()
	c.AddItem(domain.MenuItem{ID: 1, Name: "Burger", Price: 10.00})
	c.AddItem(domain.MenuItem{ID: 2, Name: "Fries", Price: 3.50})
	c.AdjustQuantity(1, 1) // fries x2
	return c.Lines()
}

func TestBuildDraft(t *testing.T) {
	draft, err := BuildDraft(sampleLines(), "Alice", "5")
	if err != nil {
		t.Fatal(err)
	}
	if draft.WaiterName != "Alice" {
		t.Errorf("waiter = %q, want Alice", draft.WaiterName)
	}
	if draft.TableNumber == nil || *draft.TableNumber != 5 {
		t.Errorf("table = %v, want 5", draft.TableNumber)
	}
	want := []domain.DraftItem{
		{Name: "Burger", Price: 10.00, Quantity: 1, MenuItemID: 1},
		{Name: "Fries", Price: 3.50, Quantity: 2, MenuItemID: 2},
	}
	if len(draft.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(draft.Items), len(want))
	}
	for i, it := range draft.Items {
		if it != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, it, want[i])
		}
	}
	if got := DraftTotal(draft).StringFixed(2); got != "17.00" {
		t.Errorf("DraftTotal = %s, want 17.00", got)
	}
}

func TestBuildDraftEmptyCart(t *testing.T) {
	// An empty cart fails regardless of the waiter name.
	for _, waiter := range []string{"", "Alice"} {
		_, err := BuildDraft(nil, waiter, "")
		var verr ValidationError
		if !errors.As(err, &verr) || verr.Code != "empty_cart" {
			t.Errorf("waiter %q: err = %v, want empty_cart", waiter, err)
		}
	}
}

func TestBuildDraftMissingWaiter(t *testing.T) {
	for _, waiter := range []string{"", "   ", "\t\n"} {
		_, err := BuildDraft(sampleLines(), waiter, "")
		var verr ValidationError
		if !errors.As(err, &verr) || verr.Code != "missing_waiter" {
			t.Errorf("waiter %q: err = %v, want missing_waiter", waiter, err)
		}
	}
}

func TestParseTableNumber(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"5", intp(5)},
		{" 12 ", intp(12)},
		{"", nil},
		{"abc", nil},
		{"0", nil},
		{"-3", nil},
		{"4.5", nil},
	}
	for _, tt := range tests {
		got := ParseTableNumber(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseTableNumber(%q) = %d, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("ParseTableNumber(%q) = %v, want %d", tt.in, got, *tt.want)
		}
	}
}

func TestVerifyTotal(t *testing.T) {
	draft, err := BuildDraft(sampleLines(), "Alice", "")
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyTotal(draft, 17.00) {
		t.Error("matching total flagged as mismatch")
	}
	if !VerifyTotal(draft, 17.004) {
		t.Error("totals equal to two decimals should match")
	}
	if VerifyTotal(draft, 17.50) {
		t.Error("mismatched total not flagged")
	}
}

func intp(n int) *int { return &n }
