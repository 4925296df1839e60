package kitchen

import (
	"context"
	"errors"
	"sync"
	"time"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/order"
	"restaurant-pos/internal/view"
)

// ErrUnknownOrder is returned when an advance targets an order the board
// has not seen; the caller should refresh and retry by hand.
var ErrUnknownOrder = errors.New("order not on the board")

// OrderSource is the slice of the backend client the board needs.
type OrderSource interface {
	Orders(ctx context.Context, status domain.Status) ([]domain.Order, error)
	order.StatusUpdater
}

// Board keeps the latest fetched order collection and derives the kitchen
// columns from it. A failed refresh keeps the previous snapshot so the
// display degrades to stale rather than blank.
type Board struct {
	src OrderSource
	lg  *logger.Logger

	mu      sync.RWMutex
	orders  []domain.Order
	fetched time.Time
	lastErr error
}

func NewBoard(src OrderSource, lg *logger.Logger) *Board {
	return &Board{src: src, lg: lg}
}

// Refresh re-fetches the full order collection from the backend.
func (b *Board) Refresh(ctx context.Context) {
	orders, err := b.src.Orders(ctx, "")
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.lastErr = err
		b.lg.Error("board_refresh_failed", err, nil)
		return
	}
	for _, ord := range orders {
		if !ord.Status.Known() {
			b.lg.Warn("unknown_order_status", map[string]any{"order_id": ord.ID, "status": string(ord.Status)})
		}
	}
	b.orders = orders
	b.fetched = time.Now().UTC()
	b.lastErr = nil
}

// Advance moves one order a single step forward through the backend and,
// on confirmation, patches the board's cached copy in place. The next poll
// reconciles with server truth either way.
func (b *Board) Advance(ctx context.Context, id int) (domain.Order, error) {
	b.mu.RLock()
	var target *domain.Order
	for i := range b.orders {
		if b.orders[i].ID == id {
			copied := b.orders[i]
			target = &copied
			break
		}
	}
	b.mu.RUnlock()
	if target == nil {
		return domain.Order{}, ErrUnknownOrder
	}

	if err := order.Advance(ctx, b.src, target); err != nil {
		return domain.Order{}, err
	}

	b.mu.Lock()
	for i := range b.orders {
		if b.orders[i].ID == id {
			b.orders[i] = *target
			break
		}
	}
	b.mu.Unlock()
	return *target, nil
}

type CardItem struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// Card is one order as the board displays it.
type Card struct {
	ID          int        `json:"id"`
	WaiterName  string     `json:"waiter_name"`
	TableNumber *int       `json:"table_number,omitempty"`
	PlacedAt    string     `json:"placed_at"`
	Elapsed     string     `json:"elapsed"`
	Items       []CardItem `json:"items"`
	NextStatus  string     `json:"next_status,omitempty"`
}

type Column struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Orders []Card `json:"orders"`
}

// BoardView is the full board payload.
type BoardView struct {
	Columns   []Column `json:"columns"`
	FetchedAt string   `json:"fetched_at,omitempty"`
	Stale     bool     `json:"stale,omitempty"`
}

// View renders the pending/preparing/ready columns from the current
// snapshot. now is a parameter so elapsed labels are testable.
func (b *Board) View(now time.Time) BoardView {
	b.mu.RLock()
	defer b.mu.RUnlock()

	buckets := view.BucketByStatus(b.orders)
	out := BoardView{Stale: b.lastErr != nil}
	if !b.fetched.IsZero() {
		out.FetchedAt = b.fetched.Format(time.RFC3339)
	}
	for _, status := range view.KitchenStatuses {
		col := Column{Status: string(status), Count: len(buckets[status])}
		for _, ord := range buckets[status] {
			col.Orders = append(col.Orders, makeCard(ord, now))
		}
		out.Columns = append(out.Columns, col)
	}
	return out
}

func makeCard(ord domain.Order, now time.Time) Card {
	card := Card{
		ID:          ord.ID,
		WaiterName:  ord.WaiterName,
		TableNumber: ord.TableNumber,
		PlacedAt:    view.FormatClock(ord.CreatedAt),
		Elapsed:     view.ElapsedSince(ord.CreatedAt, now),
	}
	if next, ok := ord.Status.Next(); ok {
		card.NextStatus = string(next)
	}
	for _, it := range ord.Items {
		card.Items = append(card.Items, CardItem{Quantity: it.Quantity, Name: it.Name})
	}
	return card
}
