// Package handlers provides the HTTP handlers of the booking API.
//
// This file defines the response helpers shared by every endpoint: the error
// envelope, the single translation from service errors to HTTP statuses, and
// thin success writers.
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "validation_failed",
//	  "field": "phone",
//	  "message": "phone: must contain 10 to 15 digits"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-booking-backend/internal/http/middleware"
	"github.com/tbourn/go-booking-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"validation_failed"`
	// Offending input field for validation failures
	Field string `json:"field,omitempty" example:"phone"`
	// Conflict reason: slot_taken, slot_past or day_full
	Reason string `json:"reason,omitempty" example:"slot_taken"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"phone: must have 10 to 15 digits"`
}

// failWith aborts the request with resp. 5xx responses are logged with the
// request-scoped logger.
func failWith(c *gin.Context, status int, resp ErrorResponse) {
	resp.RequestID = middleware.RequestIDFrom(c)

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", resp.Code).
			Str("message", resp.Message).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, ErrorResponse{Code: code, Message: msg})
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// writeServiceError maps a service error to its HTTP status and code:
//
//	ValidationError         400 validation_failed (field)
//	ValidationError "force" 428 confirmation_required
//	ConflictError           409 conflict (reason)
//	NotFoundError           404 not_found
//	InvalidTransitionError  409 invalid_transition
//	anything else           500 internal_error
//
// Storage failures never leak driver text to clients; the cause is logged.
func writeServiceError(c *gin.Context, err error) {
	var (
		ve *services.ValidationError
		ce *services.ConflictError
		ie *services.InvalidTransitionError
	)
	switch {
	case errors.As(err, &ve):
		if ve.Field == services.FieldForce {
			failWith(c, http.StatusPreconditionRequired, ErrorResponse{
				Code: ErrCodeConfirmationRequired, Field: ve.Field, Message: ve.Error(),
			})
			return
		}
		failWith(c, http.StatusBadRequest, ErrorResponse{
			Code: ErrCodeValidation, Field: ve.Field, Message: ve.Error(),
		})
	case errors.As(err, &ce):
		failWith(c, http.StatusConflict, ErrorResponse{
			Code: ErrCodeConflict, Reason: ce.Reason, Message: ce.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.As(err, &ie):
		fail(c, http.StatusConflict, ErrCodeInvalidTransition, ie.Error())
	default:
		middleware.LoggerFrom(c).Error().Err(err).Msg("service failure")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
