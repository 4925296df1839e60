package dashboard

import (
	"testing"

	"restaurant-pos/internal/domain"
)

func intp(v int) *int { return &v }

func TestSummarizeStaff(t *testing.T) {
	s := summarizeStaff([]domain.StaffMember{
		{Name: "A", Role: "waiter"},
		{Name: "B", Role: "waiter"},
		{Name: "C", Role: "chef"},
	})
	if s.Total != 3 {
		t.Errorf("total = %d, want 3", s.Total)
	}
	if s.ByRole["waiter"] != 2 || s.ByRole["chef"] != 1 {
		t.Errorf("by_role = %v", s.ByRole)
	}
}

func TestLowStockFiltersAndSorts(t *testing.T) {
	low := lowStock([]domain.InventoryItem{
		{Name: "Flour", Quantity: 50, LowStock: 10},
		{Name: "Eggs", Quantity: 3, LowStock: 12},
		{Name: "Milk", Quantity: 12, LowStock: 12},
	})
	if len(low) != 2 {
		t.Fatalf("low = %v, want 2 items", low)
	}
	if low[0].Name != "Eggs" || low[1].Name != "Milk" {
		t.Errorf("order = [%s %s], want scarcest first", low[0].Name, low[1].Name)
	}
}

func TestTopMenuRanksAndCaps(t *testing.T) {
	items := make([]domain.MenuItem, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, domain.MenuItem{ID: i, Name: "Dish", Popularity: i * 10})
	}
	top := topMenu(items)
	if len(top) != topMenuLimit {
		t.Fatalf("len = %d, want %d", len(top), topMenuLimit)
	}
	if top[0].Popularity != 60 || top[len(top)-1].Popularity != 20 {
		t.Errorf("popularity range = %d..%d", top[0].Popularity, top[len(top)-1].Popularity)
	}
	// the input slice must not be reordered
	if items[0].Popularity != 0 {
		t.Error("topMenu mutated its input")
	}
}

func TestSummarizeOrders(t *testing.T) {
	s := summarizeOrders([]domain.Order{
		{ID: 1, Status: domain.StatusPaid, TotalAmount: 10.5},
		{ID: 2, Status: domain.StatusPaid, TotalAmount: 4.5},
		{ID: 3, Status: domain.StatusPending, TotalAmount: 99, TableNumber: intp(2)},
		{ID: 4, Status: domain.StatusReady, TotalAmount: 7},
	})
	if s.Total != 4 {
		t.Errorf("total = %d, want 4", s.Total)
	}
	if s.ByStatus["paid"] != 2 || s.ByStatus["pending"] != 1 || s.ByStatus["ready"] != 1 {
		t.Errorf("by_status = %v", s.ByStatus)
	}
	if v, ok := s.ByStatus["preparing"]; !ok || v != 0 {
		t.Errorf("preparing should be present with zero count, got %v", s.ByStatus)
	}
	if s.Revenue != 15 {
		t.Errorf("revenue = %v, want 15 (paid orders only)", s.Revenue)
	}
}
