// Package services defines the business logic for booking appointments,
// moving them through their lifecycle, and answering availability queries.
// This file centralizes the typed errors returned by service methods.
//
// Every error is either a sentinel (for errors.Is) or a struct wrapping one
// (for errors.As, to reach the offending field, id, or slot). Translation
// into HTTP status codes happens in the handler layer.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tbourn/go-booking-backend/internal/domain"
)

// Sentinel errors.
var (
	// ErrValidation marks malformed input. Callers fix the input and retry.
	ErrValidation = errors.New("validation failed")

	// ErrSlotTaken means an active appointment already holds the slot.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrSlotPast means the slot started at or before the current minute.
	ErrSlotPast = errors.New("slot is in the past")

	// ErrDayFull means the date reached its daily capacity.
	ErrDayFull = errors.New("daily capacity reached")

	// ErrNotFound means no appointment has the requested id.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidTransition means the lifecycle does not allow the change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStorage marks a persistence failure.
	ErrStorage = errors.New("storage failure")

	// ErrLedgerUnderflow means a release found the day's counter at zero.
	// The counter and the store disagree; the transaction is rolled back.
	ErrLedgerUnderflow = errors.New("capacity ledger underflow")
)

// Conflict reasons.
const (
	ReasonSlotTaken = "slot_taken"
	ReasonSlotPast  = "slot_past"
	ReasonDayFull   = "day_full"
)

// Fields that are not part of a booking request but can still be rejected.
const (
	FieldForce          = "force"
	FieldIdempotencyKey = "idempotency_key"
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }

// ConflictError reports a booking that lost to existing state.
type ConflictError struct {
	Reason string // slot_taken | slot_past | day_full
	Date   string
	Time   string
}

func (e *ConflictError) Error() string {
	switch e.Reason {
	case ReasonDayFull:
		return fmt.Sprintf("%s: %s", e.Date, ErrDayFull)
	default:
		return fmt.Sprintf("%s %s: %s", e.Date, e.Time, e.Unwrap())
	}
}

func (e *ConflictError) Unwrap() error {
	switch e.Reason {
	case ReasonSlotPast:
		return ErrSlotPast
	case ReasonDayFull:
		return ErrDayFull
	default:
		return ErrSlotTaken
	}
}

func conflict(reason, date, hhmm string) error {
	return &ConflictError{Reason: reason, Date: date, Time: hhmm}
}

// NotFoundError carries the id that was looked up.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("appointment %d not found", e.ID) }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// statusDeleted is the pseudo-target used when a delete is refused.
const statusDeleted domain.Status = "deleted"

// InvalidTransitionError reports a lifecycle change the state machine refuses.
type InvalidTransitionError struct {
	ID   int64
	From domain.Status
	To   domain.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("appointment %d: cannot move from %s to %s", e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// StorageError wraps a persistence failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorage) match any StorageError.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// storage wraps err unless it already carries a service error kind.
func storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTyped(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func isTyped(err error) bool {
	var (
		ve *ValidationError
		ce *ConflictError
		ne *NotFoundError
		te *InvalidTransitionError
		se *StorageError
	)
	return errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &ne) ||
		errors.As(err, &te) || errors.As(err, &se)
}

// requiredMessage is the message used for a missing field.
func requiredMessage(field string) string {
	return strings.ToLower(field) + " is required"
}
