package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Booking outcomes recorded by BookingAttempt.
const (
	OutcomeCreated   = "created"
	OutcomeSlotTaken = "slot_taken"
	OutcomeSlotPast  = "slot_past"
	OutcomeDayFull   = "day_full"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
	OutcomeReplayed  = "replayed"
)

var (
	bookingAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_attempts_total",
			Help: "Booking attempts by outcome.",
		},
		[]string{"outcome"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_transitions_total",
			Help: "Appointment status transitions by target status.",
		},
		[]string{"to"},
	)

	bookingDeletes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_deletes_total",
			Help: "Terminal appointments permanently deleted.",
		},
	)

	// Time spent waiting for the per-date booking lock.
	bookingLockWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_lock_wait_seconds",
			Help:    "Time spent waiting for the per-date booking lock.",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	eventPublishFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_event_publish_failures_total",
			Help: "Appointment events that could not be published after commit.",
		},
	)
)

func init() {
	prometheus.MustRegister(bookingAttempts, bookingTransitions, bookingDeletes, bookingLockWait, eventPublishFailures)
}

// BookingAttempt counts one booking attempt with its outcome.
func BookingAttempt(outcome string) { bookingAttempts.WithLabelValues(outcome).Inc() }

// Transition counts one status change to `to`.
func Transition(to string) { bookingTransitions.WithLabelValues(to).Inc() }

// Deleted counts one hard delete.
func Deleted() { bookingDeletes.Inc() }

// LockWait observes how long a booking waited for its date lock.
func LockWait(d time.Duration) { bookingLockWait.Observe(d.Seconds()) }

// EventPublishFailed counts an event dropped after commit.
func EventPublishFailed() { eventPublishFailures.Inc() }
