package dashboard

import (
	"sort"

	"restaurant-pos/internal/domain"
)

// Summary is the manager overview assembled from several backend resources.
// Every field is derived client-side; the backend only stores the raw rows.
type Summary struct {
	Staff    StaffSummary           `json:"staff"`
	LowStock []domain.InventoryItem `json:"low_stock"`
	TopMenu  []domain.MenuItem      `json:"top_menu"`
	Orders   OrderSummary           `json:"orders"`
}

type StaffSummary struct {
	Total  int            `json:"total"`
	ByRole map[string]int `json:"by_role"`
}

type OrderSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Revenue  float64        `json:"revenue"`
}

// topMenuLimit caps the popularity ranking so the overview stays a glance,
// not a full catalog dump.
const topMenuLimit = 5

func summarizeStaff(members []domain.StaffMember) StaffSummary {
	s := StaffSummary{Total: len(members), ByRole: map[string]int{}}
	for _, m := range members {
		s.ByRole[m.Role]++
	}
	return s
}

func lowStock(items []domain.InventoryItem) []domain.InventoryItem {
	low := make([]domain.InventoryItem, 0)
	for _, it := range items {
		if it.IsLow() {
			low = append(low, it)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	return low
}

func topMenu(items []domain.MenuItem) []domain.MenuItem {
	ranked := make([]domain.MenuItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Popularity > ranked[j].Popularity })
	if len(ranked) > topMenuLimit {
		ranked = ranked[:topMenuLimit]
	}
	return ranked
}

// summarizeOrders counts orders per status and sums revenue over paid orders
// only; an order is not revenue until it is settled.
func summarizeOrders(orders []domain.Order) OrderSummary {
	s := OrderSummary{Total: len(orders), ByStatus: map[string]int{}}
	for _, st := range domain.AllStatuses() {
		s.ByStatus[string(st)] = 0
	}
	for _, ord := range orders {
		s.ByStatus[string(ord.Status)]++
		if ord.Status == domain.StatusPaid {
			s.Revenue += ord.TotalAmount
		}
	}
	return s
}
