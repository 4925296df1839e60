package domain

// Status is an order's lifecycle state. The progression is strictly linear:
// pending -> preparing -> ready -> delivered -> paid. No skipping, no
// backward transitions, no cancellation state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusPaid      Status = "paid"
)

var successor = map[Status]Status{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusDelivered,
	StatusDelivered: StatusPaid,
}

// Next returns the single successor status. ok is false for paid and for
// any status outside the sequence; an unknown status is treated as terminal
// and it is the caller's job to surface the data-integrity warning.
func (s Status) Next() (Status, bool) {
	n, ok := successor[s]
	return n, ok
}

// CanAdvance reports whether s has a successor.
func (s Status) CanAdvance() bool {
	_, ok := successor[s]
	return ok
}

// Known reports whether s is one of the five lifecycle states.
func (s Status) Known() bool {
	return s == StatusPaid || s.CanAdvance()
}

// AllStatuses lists the lifecycle states in progression order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusPaid}
}
