package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBookingAttempt_CountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(bookingAttempts.WithLabelValues(OutcomeDayFull))
	BookingAttempt(OutcomeDayFull)
	BookingAttempt(OutcomeDayFull)
	if got := testutil.ToFloat64(bookingAttempts.WithLabelValues(OutcomeDayFull)); got != before+2 {
		t.Fatalf("day_full=%v want %v", got, before+2)
	}
}

func TestTransitionAndDeleted(t *testing.T) {
	before := testutil.ToFloat64(bookingTransitions.WithLabelValues("cancelled"))
	Transition("cancelled")
	if got := testutil.ToFloat64(bookingTransitions.WithLabelValues("cancelled")); got != before+1 {
		t.Fatalf("cancelled=%v", got)
	}
	d := testutil.ToFloat64(bookingDeletes)
	Deleted()
	if testutil.ToFloat64(bookingDeletes) != d+1 {
		t.Fatal("delete counter not incremented")
	}
	f := testutil.ToFloat64(eventPublishFailures)
	EventPublishFailed()
	if testutil.ToFloat64(eventPublishFailures) != f+1 {
		t.Fatal("publish failure counter not incremented")
	}
}

func TestLockWait_Observes(t *testing.T) {
	before := testutil.CollectAndCount(bookingLockWait)
	LockWait(3 * time.Millisecond)
	if testutil.CollectAndCount(bookingLockWait) != before {
		t.Fatal("histogram should remain a single series")
	}
}
