// Availability and reporting HTTP handlers.
//
//   - GET /slots?date=     (slot grid with per-slot state)
//   - GET /capacity?date=  (daily occupancy)
//   - GET /services        (service catalog)
//   - GET /stats           (dashboard counters)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-booking-backend/internal/domain"
)

// SlotsResponse is the slot grid for one date.
type SlotsResponse struct {
	Date  string        `json:"date" example:"2024-06-01"`
	Slots []domain.Slot `json:"slots"`
}

// ListSlots godoc
// @ID          listSlots
// @Summary     Slot availability for a date
// @Description Every slot of the working day with its state. Booked wins over past.
// @Tags        Availability
// @Produce     json
// @Param       date  query  string  true  "Date (YYYY-MM-DD)"  example(2024-06-01)
// @Success     200  {object}  handlers.SlotsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date"
// @Router      /slots [get]
func (h *Handlers) ListSlots(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.query.SlotsFor(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, SlotsResponse{Date: date, Slots: slots})
}

// GetCapacity godoc
// @ID          getCapacity
// @Summary     Daily capacity for a date
// @Tags        Availability
// @Produce     json
// @Param       date  query  string  true  "Date (YYYY-MM-DD)"  example(2024-06-01)
// @Success     200  {object}  domain.CapacitySummary
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date"
// @Router      /capacity [get]
func (h *Handlers) GetCapacity(c *gin.Context) {
	sum, err := h.query.CapacitySummary(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, sum)
}

// ListServices godoc
// @ID          listServices
// @Summary     Service catalog
// @Tags        Catalog
// @Produce     json
// @Success     200  {array}  catalog.Service
// @Router      /services [get]
func (h *Handlers) ListServices(c *gin.Context) {
	ok(c, http.StatusOK, h.query.Services())
}

// GetStats godoc
// @ID          getStats
// @Summary     Dashboard counters
// @Description Active bookings today, totals per status and the most booked service.
// @Tags        Reporting
// @Produce     json
// @Success     200  {object}  domain.Stats
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /stats [get]
func (h *Handlers) GetStats(c *gin.Context) {
	st, err := h.query.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}
