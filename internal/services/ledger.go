package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-booking-backend/internal/repo"
)

// Ledger enforces the per-date capacity. The counter lives in the
// daily_capacity table and is only changed inside the caller's transaction,
// next to the appointment write that justifies the change.
type Ledger struct {
	DB  *gorm.DB
	Max int // active appointments allowed per date
}

// Occupancy returns the current active count for date and the daily max.
func (l *Ledger) Occupancy(ctx context.Context, date string) (current, max int, err error) {
	return l.occupancy(ctx, l.DB, date)
}

func (l *Ledger) occupancy(ctx context.Context, db *gorm.DB, date string) (int, int, error) {
	n, err := repo.GetCapacity(ctx, db, date)
	if err != nil {
		return 0, l.Max, storage("read capacity", err)
	}
	return n, l.Max, nil
}

// IsDayFull reports whether date has no capacity left.
func (l *Ledger) IsDayFull(ctx context.Context, date string) (bool, error) {
	cur, max, err := l.Occupancy(ctx, date)
	if err != nil {
		return false, err
	}
	return cur >= max, nil
}

// Reserve takes one unit of date's capacity inside tx. A full day yields a
// ConflictError and leaves the counter untouched.
func (l *Ledger) Reserve(ctx context.Context, tx *gorm.DB, date string) error {
	ok, err := repo.IncrementCapacity(ctx, tx, date, l.Max)
	if err != nil {
		return storage("reserve capacity", err)
	}
	if !ok {
		return conflict(ReasonDayFull, date, "")
	}
	return nil
}

// Release returns one unit of date's capacity inside tx. Releasing from an
// empty counter is a StorageError wrapping ErrLedgerUnderflow.
func (l *Ledger) Release(ctx context.Context, tx *gorm.DB, date string) error {
	ok, err := repo.DecrementCapacity(ctx, tx, date)
	if err != nil {
		return storage("release capacity", err)
	}
	if !ok {
		return &StorageError{Op: "release capacity", Err: ErrLedgerUnderflow}
	}
	return nil
}
