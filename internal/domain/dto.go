package domain

import (
	"fmt"
	"time"
)

// DraftItem carries one cart line into an order submission. Fields are
// copied verbatim from the cart line; nothing is recomputed or merged.
type DraftItem struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	MenuItemID int     `json:"menu_item_id"`
}

// OrderDraft is the submission-ready representation of a cart plus
// waiter/table metadata. TableNumber marshals as null when absent, which is
// what the backend expects.
type OrderDraft struct {
	WaiterName  string      `json:"waiter_name"`
	TableNumber *int        `json:"table_number"`
	Items       []DraftItem `json:"items"`
}

type OrderItemDTO struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// OrderDTO is the backend's wire shape for an order. Timestamps arrive as
// strings because the backend emits naive ISO-8601 without a zone offset.
type OrderDTO struct {
	ID          int            `json:"id"`
	WaiterName  string         `json:"waiter_name"`
	TableNumber *int           `json:"table_number"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	TotalAmount float64        `json:"total_amount"`
	Items       []OrderItemDTO `json:"items"`
}

// ToOrder converts the wire shape into the domain type. Unparseable
// timestamps come back as an error rather than silently becoming zero.
func (d OrderDTO) ToOrder() (Order, error) {
	created, err := ParseTimestamp(d.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("order %d created_at: %w", d.ID, err)
	}
	updated, err := ParseTimestamp(d.UpdatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("order %d updated_at: %w", d.ID, err)
	}
	ord := Order{
		ID:          d.ID,
		WaiterName:  d.WaiterName,
		TableNumber: d.TableNumber,
		Status:      Status(d.Status),
		CreatedAt:   created,
		UpdatedAt:   updated,
		TotalAmount: d.TotalAmount,
	}
	for _, it := range d.Items {
		ord.Items = append(ord.Items, OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return ord, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999", // naive UTC, as the backend emits
	"2006-01-02T15:04:05",
}

// ParseTimestamp accepts both RFC 3339 and the backend's zone-less ISO
// format; naive values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
