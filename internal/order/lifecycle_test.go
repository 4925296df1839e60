package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-pos/internal/domain"
)

type fakeUpdater struct {
	gotID     int
	gotStatus domain.Status
	updatedAt time.Time
	err       error
}

func (f *fakeUpdater) UpdateOrderStatus(_ context.Context, id int, status domain.Status) (time.Time, error) {
	f.gotID = id
	f.gotStatus = status
	return f.updatedAt, f.err
}

func TestAdvanceConfirmedSuccess(t *testing.T) {
	serverTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	upd := &fakeUpdater{updatedAt: serverTime}
	ord := domain.Order{ID: 42, Status: domain.StatusReady, UpdatedAt: serverTime.Add(-time.Hour)}

	if err := Advance(context.Background(), upd, &ord); err != nil {
		t.Fatal(err)
	}
	if upd.gotID != 42 || upd.gotStatus != domain.StatusDelivered {
		t.Errorf("collaborator called with (%d, %q), want (42, delivered)", upd.gotID, upd.gotStatus)
	}
	if ord.Status != domain.StatusDelivered {
		t.Errorf("local status = %q, want delivered", ord.Status)
	}
	if !ord.UpdatedAt.Equal(serverTime) {
		t.Errorf("updated_at = %v, want the server-returned %v", ord.UpdatedAt, serverTime)
	}
}

func TestAdvanceFailureLeavesLocalStateUntouched(t *testing.T) {
	before := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	upd := &fakeUpdater{err: errors.New("backend unreachable")}
	ord := domain.Order{ID: 7, Status: domain.StatusReady, UpdatedAt: before}

	if err := Advance(context.Background(), upd, &ord); err == nil {
		t.Fatal("expected the collaborator failure to surface")
	}
	if ord.Status != domain.StatusReady || !ord.UpdatedAt.Equal(before) {
		t.Errorf("local state changed on failure: %+v", ord)
	}
}

func TestAdvanceTerminal(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusPaid, "mystery"} {
		upd := &fakeUpdater{}
		ord := domain.Order{ID: 1, Status: status}
		err := Advance(context.Background(), upd, &ord)
		if !errors.Is(err, ErrTerminal) {
			t.Errorf("status %q: err = %v, want ErrTerminal", status, err)
		}
		if upd.gotID != 0 {
			t.Errorf("status %q: collaborator should not have been called", status)
		}
	}
}
