package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-booking-backend/internal/catalog"
	"github.com/tbourn/go-booking-backend/internal/clock"
	"github.com/tbourn/go-booking-backend/internal/domain"
	"github.com/tbourn/go-booking-backend/internal/events"
	"github.com/tbourn/go-booking-backend/internal/lock"
	"github.com/tbourn/go-booking-backend/internal/repo"
	"github.com/tbourn/go-booking-backend/internal/schedule"
)

type env struct {
	DB      *gorm.DB
	Clock   *clock.Fixed
	Booking *BookingService
	Query   *QueryService
	Ledger  *Ledger
	Events  *events.Recorder
}

type envOpt func(*envConfig)

type envConfig struct {
	now         time.Time
	capacity    int
	slotMinutes int
	horizon     int
	fileDB      bool
}

func withNow(t time.Time) envOpt   { return func(c *envConfig) { c.now = t } }
func withCapacity(n int) envOpt    { return func(c *envConfig) { c.capacity = n } }
func withSlotMinutes(n int) envOpt { return func(c *envConfig) { c.slotMinutes = n } }

// withFileDB opens the database through repo.OpenSQLite on a temp file,
// keeping its production pool instead of a single connection.
func withFileDB() envOpt { return func(c *envConfig) { c.fileDB = true } }

// newEnv wires both services over a fresh in-memory database. The default
// clock reads 2024-06-01 08:00 UTC with salon defaults (09:00-19:00, 30 min,
// capacity 20, 30-day horizon).
func newEnv(t *testing.T, opts ...envOpt) *env {
	t.Helper()
	cfg := envConfig{
		now:         time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		capacity:    20,
		slotMinutes: 30,
		horizon:     30,
	}
	for _, o := range opts {
		o(&cfg)
	}

	var db *gorm.DB
	if cfg.fileDB {
		fdb, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "booking.db"))
		require.NoError(t, err)
		db = fdb.Session(&gorm.Session{Logger: logger.Default.LogMode(logger.Silent)})
	} else {
		dsn := fmt.Sprintf("file:services_%s?mode=memory&cache=shared", uuid.NewString())
		mdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		require.NoError(t, err)
		db = mdb
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	if !cfg.fileDB {
		sqlDB.SetMaxOpenConns(1)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.AutoMigrate(db))

	clk := clock.NewFixed(cfg.now)
	gen := schedule.MustNew("09:00", "19:00", cfg.slotMinutes)
	cat := catalog.Default()
	v := &Validator{Clock: clk, Slots: gen, Catalog: cat, MaxAdvanceDays: cfg.horizon, NameLocale: language.Turkish}
	ledger := &Ledger{DB: db, Max: cfg.capacity}
	rec := &events.Recorder{}

	return &env{
		DB:     db,
		Clock:  clk,
		Ledger: ledger,
		Events: rec,
		Booking: &BookingService{
			DB: db, Clock: clk, Validator: v, Ledger: ledger,
			Locks: lock.NewMemory(), Events: rec, IdempotencyTTL: time.Hour,
		},
		Query: &QueryService{DB: db, Clock: clk, Slots: gen, Catalog: cat, Ledger: ledger, Validator: v},
	}
}

func req(date, hhmm string) BookRequest {
	return BookRequest{Name: "Ayşe Yılmaz", Phone: "0555 123 45 67", Service: "Fön", Date: date, Time: hhmm}
}

// mustBook books or fails the test.
func (e *env) mustBook(t *testing.T, date, hhmm string) *domain.Appointment {
	t.Helper()
	a, err := e.Booking.Book(context.Background(), req(date, hhmm))
	require.NoError(t, err)
	return a
}

// requireLedgerConsistent checks the counter against the store for date.
func (e *env) requireLedgerConsistent(t *testing.T, date string) int {
	t.Helper()
	cur, _, err := e.Ledger.Occupancy(context.Background(), date)
	require.NoError(t, err)
	n, err := repo.CountActiveOn(context.Background(), e.DB, date)
	require.NoError(t, err)
	require.Equal(t, int(n), cur, "ledger drifted from active appointments on %s", date)
	return cur
}
