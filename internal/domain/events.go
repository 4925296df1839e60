package domain

// OrderEvent is published to the order-events exchange whenever an order is
// created or advanced. Boards treat events purely as refresh triggers; the
// order collection itself is always re-fetched from the backend.
type OrderEvent struct {
	OrderID   int    `json:"order_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}
