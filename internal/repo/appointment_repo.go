// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Appointment model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only
// persistence and query composition.
//
// Error semantics:
//   - When an appointment is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - An insert that would put a second active row on a (date, time) returns
//     ErrDuplicate.
//   - Any other DB error is propagated unchanged.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-booking-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a unique index rejected the write.
var ErrDuplicate = errors.New("duplicate")

// CreateAppointment inserts a as an active appointment. ID, Status and
// timestamps are assigned here.
func CreateAppointment(ctx context.Context, db *gorm.DB, a *domain.Appointment) error {
	now := time.Now().UTC()
	a.ID = 0
	a.Status = domain.StatusActive
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetAppointment fetches one appointment by id, or ErrNotFound.
func GetAppointment(ctx context.Context, db *gorm.DB, id int64) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func filtered(ctx context.Context, db *gorm.DB, f domain.AppointmentFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.Appointment{})
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

// ListAppointments returns a page of appointments matching f ordered by
// date, time, then id ascending.
func ListAppointments(ctx context.Context, db *gorm.DB, f domain.AppointmentFilter, offset, limit int) ([]domain.Appointment, error) {
	var out []domain.Appointment
	q := filtered(ctx, db, f).Order("date ASC").Order(`"time" ASC`).Order("id ASC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountAppointments counts rows matching f.
func CountAppointments(ctx context.Context, db *gorm.DB, f domain.AppointmentFilter) (int64, error) {
	var n int64
	err := filtered(ctx, db, f).Count(&n).Error
	return n, err
}

// TransitionAppointmentStatus moves id from `from` to `to` only if it is
// currently in `from`. It reports whether a row changed.
func TransitionAppointmentStatus(ctx context.Context, db *gorm.DB, id int64, from, to domain.Status) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteAppointment removes a non-active appointment. Active rows are never
// deleted here; it reports whether a row was removed.
func DeleteAppointment(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	res := db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, domain.StatusActive).
		Delete(&domain.Appointment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ActiveSlotTimes returns the start times of active appointments on date.
func ActiveSlotTimes(ctx context.Context, db *gorm.DB, date string) ([]string, error) {
	var times []string
	err := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("date = ? AND status = ?", date, domain.StatusActive).
		Order(`"time" ASC`).
		Pluck("time", &times).Error
	return times, err
}

// IsSlotActive reports whether an active appointment holds (date, hhmm).
func IsSlotActive(ctx context.Context, db *gorm.DB, date, hhmm string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where(`date = ? AND "time" = ? AND status = ?`, date, hhmm, domain.StatusActive).
		Count(&n).Error
	return n > 0, err
}

// CountActiveOn counts active appointments on date.
func CountActiveOn(ctx context.Context, db *gorm.DB, date string) (int64, error) {
	return CountAppointments(ctx, db, domain.AppointmentFilter{Date: date, Status: domain.StatusActive})
}
