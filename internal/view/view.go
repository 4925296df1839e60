// Package view derives display-oriented subsets and labels from an order
// collection: status buckets for column boards and human-readable ages for
// order cards.
package view

import (
	"fmt"
	"time"

	"restaurant-pos/internal/domain"
)

// KitchenStatuses are the kitchen board columns, in display order.
var KitchenStatuses = []domain.Status{
	domain.StatusPending,
	domain.StatusPreparing,
	domain.StatusReady,
}

// BucketByStatus partitions orders by exact status string equality, no case
// normalization. Every order lands in exactly one bucket, so the buckets
// are disjoint and exhaustive over the statuses present in the input.
func BucketByStatus(orders []domain.Order) map[domain.Status][]domain.Order {
	buckets := make(map[domain.Status][]domain.Order)
	for _, ord := range orders {
		buckets[ord.Status] = append(buckets[ord.Status], ord)
	}
	return buckets
}

// FilterByStatus returns the orders whose status equals status, preserving
// input order.
func FilterByStatus(orders []domain.Order, status domain.Status) []domain.Order {
	var out []domain.Order
	for _, ord := range orders {
		if ord.Status == status {
			out = append(out, ord)
		}
	}
	return out
}

// ElapsedSince renders the age of a timestamp the way the kitchen board
// shows it. Buckets use floor division of whole minutes, so exactly 60
// minutes rolls over to "1 hour ago". There is no day granularity.
func ElapsedSince(createdAt, now time.Time) string {
	mins := int(now.Sub(createdAt) / time.Minute)
	if mins < 1 {
		return "Just now"
	}
	if mins == 1 {
		return "1 minute ago"
	}
	if mins < 60 {
		return fmt.Sprintf("%d minutes ago", mins)
	}
	hours := mins / 60
	if hours == 1 {
		return "1 hour ago"
	}
	return fmt.Sprintf("%d hours ago", hours)
}

// FormatClock renders the HH:MM shown on order cards.
func FormatClock(t time.Time) string { return t.Format("15:04") }
