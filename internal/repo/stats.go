// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the
// dashboard counters.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-booking-backend/internal/domain"
)

// AppointmentStats computes dashboard counters. today is "YYYY-MM-DD" in the
// business time zone. The popular service counts bookings in every status;
// ties go to the alphabetically first name.
func AppointmentStats(ctx context.Context, db *gorm.DB, today string) (domain.Stats, error) {
	var st domain.Stats

	var byStatus []struct {
		Status domain.Status
		N      int64
	}
	if err := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return st, err
	}
	for _, r := range byStatus {
		st.Total += r.N
		switch r.Status {
		case domain.StatusActive:
			st.Active = r.N
		case domain.StatusCompleted:
			st.Completed = r.N
		case domain.StatusCancelled:
			st.Cancelled = r.N
		}
	}

	n, err := CountActiveOn(ctx, db, today)
	if err != nil {
		return st, err
	}
	st.TodayActive = n

	if st.Total == 0 {
		return st, nil
	}
	var top struct {
		Service string
		N       int64
	}
	if err := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Select("service, COUNT(*) AS n").
		Group("service").
		Order("n DESC").Order("service ASC").
		Limit(1).
		Scan(&top).Error; err != nil {
		return st, err
	}
	st.PopularService = top.Service
	st.PopularCount = top.N
	return st, nil
}
