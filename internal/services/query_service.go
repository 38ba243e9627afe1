// Package services – QueryService
//
// QueryService answers read-only questions: slot availability for a date,
// how full a date is, filtered appointment listings, dashboard counters and
// the service catalog. Multi-statement reads run in one transaction so they
// observe a single snapshot. Reads never take the booking lock.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-booking-backend/internal/catalog"
	"github.com/tbourn/go-booking-backend/internal/clock"
	"github.com/tbourn/go-booking-backend/internal/domain"
	"github.com/tbourn/go-booking-backend/internal/repo"
	"github.com/tbourn/go-booking-backend/internal/schedule"
	"github.com/tbourn/go-booking-backend/internal/utils"
)

// QueryService serves availability and reporting reads.
type QueryService struct {
	DB        *gorm.DB
	Clock     clock.Clock
	Slots     *schedule.Generator
	Catalog   *catalog.Catalog
	Ledger    *Ledger
	Validator *Validator
}

// SlotsFor classifies every slot of date. A slot held by an active
// appointment is booked, otherwise a slot that has started is past.
func (q *QueryService) SlotsFor(ctx context.Context, date string) ([]domain.Slot, error) {
	ctx, span := tracer.Start(ctx, "QueryService.SlotsFor", trace.WithAttributes(attribute.String("date", date)))
	defer span.End()

	ds, err := q.Validator.Date(date)
	if err != nil {
		return nil, err
	}
	d, _ := clock.ParseDate(ds, q.Clock.Location())

	booked, err := repo.ActiveSlotTimes(ctx, q.DB, ds)
	if err != nil {
		return nil, storage("read slots", err)
	}
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	now := q.Clock.Now()
	grid := q.Slots.Generate(d)
	out := make([]domain.Slot, 0, len(grid))
	for _, t := range grid {
		state := domain.SlotAvailable
		if _, ok := taken[t]; ok {
			state = domain.SlotBooked
		} else if slotIsPast(ds, t, now) {
			state = domain.SlotPast
		}
		out = append(out, domain.Slot{Time: t, State: state})
	}
	return out, nil
}

// CapacitySummary reports the occupancy of date.
func (q *QueryService) CapacitySummary(ctx context.Context, date string) (domain.CapacitySummary, error) {
	ctx, span := tracer.Start(ctx, "QueryService.CapacitySummary", trace.WithAttributes(attribute.String("date", date)))
	defer span.End()

	ds, err := q.Validator.Date(date)
	if err != nil {
		return domain.CapacitySummary{}, err
	}
	cur, max, err := q.Ledger.Occupancy(ctx, ds)
	if err != nil {
		return domain.CapacitySummary{}, err
	}
	return domain.CapacitySummary{Date: ds, Current: cur, Max: max, IsFull: cur >= max}, nil
}

// ListFilter is the raw listing filter; empty strings mean "any".
type ListFilter struct {
	Date   string
	Status string
}

// ListAppointments returns one page of appointments ordered by date, time
// and id, plus the total number of matches.
func (q *QueryService) ListAppointments(ctx context.Context, f ListFilter, page, pageSize int) ([]domain.Appointment, int64, error) {
	ctx, span := tracer.Start(ctx, "QueryService.ListAppointments",
		trace.WithAttributes(
			attribute.String("filter.date", f.Date),
			attribute.String("filter.status", f.Status),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	var filter domain.AppointmentFilter
	if f.Date != "" {
		ds, err := q.Validator.Date(f.Date)
		if err != nil {
			return nil, 0, err
		}
		filter.Date = ds
	}
	if f.Status != "" {
		st, err := Status(f.Status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = st
	}

	page, pageSize = utils.ClampPage(page, pageSize)
	offset := utils.Offset(page, pageSize)

	var (
		items []domain.Appointment
		total int64
	)
	err := q.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if total, err = repo.CountAppointments(ctx, tx, filter); err != nil || total == 0 {
			return err
		}
		items, err = repo.ListAppointments(ctx, tx, filter, offset, pageSize)
		return err
	})
	if err != nil {
		return nil, 0, storage("list appointments", err)
	}
	if items == nil {
		items = []domain.Appointment{}
	}
	return items, total, nil
}

// GetAppointment fetches one appointment.
func (q *QueryService) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := repo.GetAppointment(ctx, q.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, storage("read appointment", err)
	}
	return a, nil
}

// Stats returns the dashboard counters, with "today" taken from the clock.
func (q *QueryService) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, span := tracer.Start(ctx, "QueryService.Stats")
	defer span.End()

	var st domain.Stats
	err := q.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		st, err = repo.AppointmentStats(ctx, tx, clock.FormatDate(q.Clock.Now()))
		return err
	})
	if err != nil {
		return domain.Stats{}, storage("stats", err)
	}
	return st, nil
}

// Services lists the catalog.
func (q *QueryService) Services() []catalog.Service {
	return q.Catalog.All()
}
