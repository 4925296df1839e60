package domain

import "testing"

func TestStatusNext(t *testing.T) {
	tests := []struct {
		current Status
		next    Status
		ok      bool
	}{
		{StatusPending, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusDelivered, true},
		{StatusDelivered, StatusPaid, true},
		{StatusPaid, "", false},
		{Status("cancelled"), "", false},
		{Status(""), "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			next, ok := tt.current.Next()
			if ok != tt.ok {
				t.Fatalf("Next(%q) ok = %v, want %v", tt.current, ok, tt.ok)
			}
			if ok && next != tt.next {
				t.Errorf("Next(%q) = %q, want %q", tt.current, next, tt.next)
			}
			if got := tt.current.CanAdvance(); got != tt.ok {
				t.Errorf("CanAdvance(%q) = %v, want %v", tt.current, got, tt.ok)
			}
		})
	}
}

func TestStatusKnown(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.Known() {
			t.Errorf("%q should be a known status", s)
		}
	}
	if Status("refunded").Known() {
		t.Error("refunded should not be a known status")
	}
}
