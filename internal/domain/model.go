package domain

import "time"

// MenuItem is one entry of the backend's menu catalog. Immutable from this
// side; the catalog is owned by the backend.
type MenuItem struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Popularity int     `json:"popularity"`
}

type InventoryItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	LowStock int    `json:"low_stock"`
}

// IsLow reports whether the item has dropped to its low-stock threshold.
func (i InventoryItem) IsLow() bool { return i.Quantity <= i.LowStock }

type StaffMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Hours       int    `json:"hours"`
	Performance int    `json:"performance"`
}

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the result of a login: an opaque bearer token plus the user it
// belongs to. It is passed explicitly to every privileged call rather than
// kept in ambient state.
type Session struct {
	Token string
	User  User
}

func (s Session) Valid() bool { return s.Token != "" }

type OrderItem struct {
	ID       int
	Name     string
	Quantity int
	Price    float64
}

// Order is the backend-owned record of a submitted draft. Instances on this
// side are read-through cached copies from the last fetch; total_amount is
// computed by the backend and not recomputed here.
type Order struct {
	ID          int
	WaiterName  string
	TableNumber *int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	TotalAmount float64
	Items       []OrderItem
}
