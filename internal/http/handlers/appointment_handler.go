// Appointment HTTP handlers.
//
// This file exposes the REST endpoints for appointment records:
//   - POST   /appointments              (book; honors Idempotency-Key)
//   - GET    /appointments              (filtered, paginated list)
//   - GET    /appointments/{id}         (one record)
//   - PATCH  /appointments/{id}/status  (complete or cancel)
//   - POST   /appointments/{id}/cancel  (cancel)
//   - DELETE /appointments/{id}         (hard delete, requires force=true)
//
// Handlers are transport-thin: they decode input, call the services and map
// typed service errors through writeServiceError.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-booking-backend/internal/catalog"
	"github.com/tbourn/go-booking-backend/internal/domain"
	"github.com/tbourn/go-booking-backend/internal/http/middleware"
	"github.com/tbourn/go-booking-backend/internal/services"
	"github.com/tbourn/go-booking-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// BookingService defines the write operations consumed by the handlers.
// Implementations must be safe for concurrent use.
type BookingService interface {
	// BookOnce books req; a repeated (scope, key) returns the first result
	// with replayed=true. An empty key disables deduplication.
	BookOnce(ctx context.Context, scope, key string, req services.BookRequest) (*domain.Appointment, bool, error)
	// Transition moves an active appointment to a terminal status.
	Transition(ctx context.Context, id int64, to domain.Status) (*domain.Appointment, error)
	// Cancel is Transition to cancelled.
	Cancel(ctx context.Context, id int64) (*domain.Appointment, error)
	// Delete removes a terminal appointment; force must be true.
	Delete(ctx context.Context, id int64, force bool) error
}

// QueryService defines the read operations consumed by the handlers.
type QueryService interface {
	SlotsFor(ctx context.Context, date string) ([]domain.Slot, error)
	CapacitySummary(ctx context.Context, date string) (domain.CapacitySummary, error)
	ListAppointments(ctx context.Context, f services.ListFilter, page, pageSize int) ([]domain.Appointment, int64, error)
	GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Services() []catalog.Service
}

//
// Handler wiring
//

// Handlers groups the booking API endpoints.
type Handlers struct {
	booking BookingService
	query   QueryService
}

// New constructs a Handlers bound to the given services.
func New(booking BookingService, query QueryService) *Handlers {
	return &Handlers{booking: booking, query: query}
}

//
// DTOs
//

// CreateAppointmentRequest is the JSON payload for booking a slot.
type CreateAppointmentRequest struct {
	Name    string `json:"name" example:"Ayşe Yılmaz"`
	Phone   string `json:"phone" example:"+90 532 123 45 67"`
	Service string `json:"service" example:"Saç Kesimi"`
	Date    string `json:"date" example:"2024-06-01"`
	Time    string `json:"time" example:"10:30"`
}

// UpdateStatusRequest is the JSON payload for a status change.
type UpdateStatusRequest struct {
	// Status is the target status: completed or cancelled.
	Status string `json:"status" example:"completed"`
}

// ListAppointmentsResponse wraps a page of appointments and pagination info.
type ListAppointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
	Pagination   utils.Page           `json:"pagination"`
}

//
// Helpers
//

// appointmentID parses the :id path parameter.
func appointmentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		failWith(c, http.StatusBadRequest, ErrorResponse{
			Code: ErrCodeValidation, Field: "id", Message: "id: must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

//
// Handlers
//

// CreateAppointment godoc
// @ID          createAppointment
// @Summary     Book a slot
// @Description Validates the request and books the slot under the daily capacity. Retries carrying the same Idempotency-Key and the same booking return the original appointment with Idempotency-Replayed: true; a key reused for a different booking is rejected with 400 on idempotency_key.
// @Tags        Appointments
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false  "Client retry key"  example(3f1c0d1e-booking-1)
// @Param       body             body    handlers.CreateAppointmentRequest  true  "Booking payload"
//
// @Success     201  {object}  domain.Appointment
// @Success     200  {object}  domain.Appointment      "Replayed result"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed or Idempotency-Key reused"
// @Failure     409  {object}  handlers.ErrorResponse  "Slot taken, slot in the past or day full"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /appointments [post]
func (h *Handlers) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	a, replayed, err := h.booking.BookOnce(c.Request.Context(), middleware.IdempotencyScope(c), key, services.BookRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Service: req.Service,
		Date:    req.Date,
		Time:    req.Time,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
		ok(c, http.StatusOK, a)
		return
	}
	c.Header("Location", c.FullPath()+"/"+strconv.FormatInt(a.ID, 10))
	ok(c, http.StatusCreated, a)
}

// ListAppointments godoc
// @ID          listAppointments
// @Summary     List appointments (paginated)
// @Description Returns appointments ordered by date, time and id. Filters combine with AND.
// @Tags        Appointments
// @Produce     json
//
// @Param       date       query  string  false  "Exact date (YYYY-MM-DD)"  example(2024-06-01)
// @Param       status     query  string  false  "active, completed or cancelled"  Enums(active, completed, cancelled)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListAppointmentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid filter"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /appointments [get]
func (h *Handlers) ListAppointments(c *gin.Context) {
	page, pageSize := utils.ClampPage(
		utils.AtoiDefault(c.Query("page"), 1),
		utils.AtoiDefault(c.Query("page_size"), utils.DefaultPageSize),
	)
	filter := services.ListFilter{Date: c.Query("date"), Status: c.Query("status")}

	items, total, err := h.query.ListAppointments(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, ListAppointmentsResponse{
		Appointments: items,
		Pagination:   utils.NewPage(page, pageSize, total),
	})
}

// GetAppointment godoc
// @ID          getAppointment
// @Summary     Get one appointment
// @Tags        Appointments
// @Produce     json
// @Param       id   path      int  true  "Appointment ID"  example(42)
// @Success     200  {object}  domain.Appointment
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /appointments/{id} [get]
func (h *Handlers) GetAppointment(c *gin.Context) {
	id, valid := appointmentID(c)
	if !valid {
		return
	}
	a, err := h.query.GetAppointment(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// UpdateAppointmentStatus godoc
// @ID          updateAppointmentStatus
// @Summary     Change an appointment's status
// @Description Moves an active appointment to completed or cancelled and frees its capacity. Terminal statuses are final.
// @Tags        Appointments
// @Accept      json
// @Produce     json
// @Param       id    path  int                           true  "Appointment ID"  example(42)
// @Param       body  body  handlers.UpdateStatusRequest  true  "Target status"
// @Success     200  {object}  domain.Appointment
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid status"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Invalid transition"
// @Router      /appointments/{id}/status [patch]
func (h *Handlers) UpdateAppointmentStatus(c *gin.Context) {
	id, valid := appointmentID(c)
	if !valid {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	to, err := services.Status(req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	a, err := h.booking.Transition(c.Request.Context(), id, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// CancelAppointment godoc
// @ID          cancelAppointment
// @Summary     Cancel an appointment
// @Tags        Appointments
// @Produce     json
// @Param       id   path      int  true  "Appointment ID"  example(42)
// @Success     200  {object}  domain.Appointment
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already completed or cancelled"
// @Router      /appointments/{id}/cancel [post]
func (h *Handlers) CancelAppointment(c *gin.Context) {
	id, valid := appointmentID(c)
	if !valid {
		return
	}
	a, err := h.booking.Cancel(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// DeleteAppointment godoc
// @ID          deleteAppointment
// @Summary     Permanently delete an appointment
// @Description Only completed or cancelled appointments can be deleted, and only with force=true.
// @Tags        Appointments
// @Param       id     path   int   true  "Appointment ID"  example(42)
// @Param       force  query  bool  true  "Confirm the permanent delete"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Appointment is still active"
// @Failure     428  {object}  handlers.ErrorResponse  "force=true missing"
// @Router      /appointments/{id} [delete]
func (h *Handlers) DeleteAppointment(c *gin.Context) {
	id, valid := appointmentID(c)
	if !valid {
		return
	}
	force, _ := strconv.ParseBool(c.Query("force"))
	if err := h.booking.Delete(c.Request.Context(), id, force); err != nil {
		writeServiceError(c, err)
		return
	}
	noContent(c)
}
