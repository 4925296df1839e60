package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-pos/internal/domain"
)

// ErrTerminal is returned when an order has no successor status. This
// covers paid and, deliberately, any status outside the known sequence.
var ErrTerminal = errors.New("status has no successor")

// StatusUpdater is the external collaborator that persists a status change.
// The backend REST client implements it.
type StatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, id int, status domain.Status) (time.Time, error)
}

// Advance moves ord one step along the lifecycle through upd. The local
// copy is touched only after the collaborator confirms: on failure ord is
// left exactly as it was and the error is surfaced to the caller. There is
// no automatic retry and no optimistic-concurrency check; concurrent
// advances resolve last-write-wins on the backend.
func Advance(ctx context.Context, upd StatusUpdater, ord *domain.Order) error {
	next, ok := ord.Status.Next()
	if !ok {
		return fmt.Errorf("%w: %q", ErrTerminal, ord.Status)
	}
	updatedAt, err := upd.UpdateOrderStatus(ctx, ord.ID, next)
	if err != nil {
		return err
	}
	ord.Status = next
	ord.UpdatedAt = updatedAt
	return nil
}
