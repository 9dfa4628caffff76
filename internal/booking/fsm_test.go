package booking

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusConfirmed) {
		t.Fatal("expected Pending -> Confirmed to be allowed")
	}
	if !CanTransition(StatusConfirmed, StatusDelivered) {
		t.Fatal("expected Confirmed -> Delivered to be allowed")
	}
	if !CanTransition(StatusDelivered, StatusCompleted) {
		t.Fatal("expected Delivered -> Completed to be allowed")
	}
	if CanTransition(StatusPending, StatusDelivered) {
		t.Fatal("unexpected transition skipping Confirmed")
	}
	if CanTransition(StatusConfirmed, StatusPending) {
		t.Fatal("unexpected backward transition allowed")
	}
	if CanTransition(StatusCompleted, StatusDelivered) {
		t.Fatal("unexpected transition out of Completed")
	}
	if CanTransition("Cancelled", StatusCompleted) {
		t.Fatal("unknown status should not transition anywhere")
	}
}
