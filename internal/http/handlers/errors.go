// Package handlers defines the stable, machine-readable error codes carried in
// every error envelope. Clients branch on the code; the message is for humans.
//
// Conventions:
//   - Codes are lowercase snake_case.
//   - Generic codes mirror HTTP status semantics.
//   - Booking codes are refined by the envelope's `field` (validation) or
//     `reason` (conflict) member.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "reason": "slot_taken",
//	  "message": "2024-06-01 10:00: slot already booked"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Booking-specific:
	ErrCodeValidation           = "validation_failed"
	ErrCodeInvalidTransition    = "invalid_transition"
	ErrCodeConfirmationRequired = "confirmation_required"
)
