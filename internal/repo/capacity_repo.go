// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file holds the per-date capacity counter. Every
// mutation is a single conditional statement so the counter can never pass
// its bounds even when two writers race.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-booking-backend/internal/domain"
)

// GetCapacity returns the active counter for date (0 when no row exists).
func GetCapacity(ctx context.Context, db *gorm.DB, date string) (int, error) {
	var row domain.DailyCapacity
	err := db.WithContext(ctx).First(&row, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Active, nil
}

// IncrementCapacity adds one to date's counter if it is below max. It
// reports false, with no mutation, when the day is already full.
func IncrementCapacity(ctx context.Context, db *gorm.DB, date string, max int) (bool, error) {
	now := time.Now().UTC()
	seed := &domain.DailyCapacity{Date: date, Active: 0, UpdatedAt: now}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return false, err
	}
	res := db.WithContext(ctx).
		Model(&domain.DailyCapacity{}).
		Where("date = ? AND active < ?", date, max).
		Updates(map[string]any{"active": gorm.Expr("active + 1"), "updated_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DecrementCapacity subtracts one from date's counter if it is positive.
// It reports false when there was nothing to release.
func DecrementCapacity(ctx context.Context, db *gorm.DB, date string) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.DailyCapacity{}).
		Where("date = ? AND active > 0", date).
		Updates(map[string]any{"active": gorm.Expr("active - 1"), "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RebuildCapacity recomputes every counter from the appointments table in
// one transaction and returns the number of dates with active bookings.
func RebuildCapacity(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.DailyCapacity{}).Error; err != nil {
			return err
		}
		res := tx.Exec(
			`INSERT INTO daily_capacity (date, active, updated_at)
			 SELECT date, COUNT(*), ? FROM appointments WHERE status = ? GROUP BY date`,
			time.Now().UTC(), domain.StatusActive,
		)
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected
		return nil
	})
	return n, err
}
