package domain

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01T12:30:00Z", time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2025-03-01T12:30:00.500000", time.Date(2025, 3, 1, 12, 30, 0, 500_000_000, time.UTC)},
		{"2025-03-01T12:30:00", time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("expected an error for a garbage timestamp")
	}
}

func TestOrderDTOToOrder(t *testing.T) {
	five := 5
	dto := OrderDTO{
		ID:          7,
		WaiterName:  "Alice",
		TableNumber: &five,
		Status:      "preparing",
		CreatedAt:   "2025-03-01T10:00:00",
		UpdatedAt:   "2025-03-01T10:05:00",
		TotalAmount: 17.0,
		Items: []OrderItemDTO{
			{ID: 1, Name: "Burger", Quantity: 1, Price: 10.0, Total: 10.0},
			{ID: 2, Name: "Fries", Quantity: 2, Price: 3.5, Total: 7.0},
		},
	}
	ord, err := dto.ToOrder()
	if err != nil {
		t.Fatal(err)
	}
	if ord.Status != StatusPreparing {
		t.Errorf("status = %q, want preparing", ord.Status)
	}
	if ord.TableNumber == nil || *ord.TableNumber != 5 {
		t.Error("table number lost in conversion")
	}
	if len(ord.Items) != 2 || ord.Items[1].Quantity != 2 {
		t.Errorf("items not copied verbatim: %+v", ord.Items)
	}
	if !ord.UpdatedAt.After(ord.CreatedAt) {
		t.Error("timestamps out of order after parse")
	}
}
