package repo

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-booking-backend/internal/config"
	"github.com/tbourn/go-booking-backend/internal/domain"
)

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	base := t.TempDir()
	bad := filepath.Join(base, "does-not-exist", "app.db")

	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}

	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory") ||
		strings.Contains(lower, "out of memory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpenSQLite_SetsPragmas_Pool_AndAutoMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := Open(config.DBConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	var journalMode string
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if strings.ToLower(journalMode) != "wal" {
		t.Fatalf("expected journal_mode=wal, got %q", journalMode)
	}
	var busyMS int
	if err := db.Raw("PRAGMA busy_timeout;").Row().Scan(&busyMS); err != nil {
		t.Fatalf("PRAGMA busy_timeout: %v", err)
	}
	if busyMS != 5000 {
		t.Fatalf("expected busy_timeout=5000, got %d", busyMS)
	}
	if stats := sqlDB.Stats(); stats.MaxOpenConnections != 10 {
		t.Fatalf("expected MaxOpenConnections=10, got %d", stats.MaxOpenConnections)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	// Idempotent.
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate (second run): %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []any{&domain.Appointment{}, &domain.DailyCapacity{}, &domain.Idempotency{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&domain.Appointment{}, "ux_appointments_active_slot") {
		t.Fatalf("expected partial unique index ux_appointments_active_slot")
	}
}

func TestOpenSQLite_PragmasOnEveryConnection(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "pool.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	var conns []*sql.Conn
	for i := 0; i < 3; i++ {
		c, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("conn %d: %v", i, err)
		}
		conns = append(conns, c)
	}
	for i, c := range conns {
		var busyMS, fk int
		if err := c.QueryRowContext(ctx, "PRAGMA busy_timeout;").Scan(&busyMS); err != nil {
			t.Fatalf("conn %d busy_timeout: %v", i, err)
		}
		if err := c.QueryRowContext(ctx, "PRAGMA foreign_keys;").Scan(&fk); err != nil {
			t.Fatalf("conn %d foreign_keys: %v", i, err)
		}
		if busyMS != 5000 || fk != 1 {
			t.Fatalf("conn %d: busy_timeout=%d foreign_keys=%d", i, busyMS, fk)
		}
		_ = c.Close()
	}
}

func TestSQLiteDSN(t *testing.T) {
	cases := map[string]string{
		"app.db":              "app.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)",
		"app.db?cache=shared": "app.db?cache=shared&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Fatalf("sqliteDSN(%q)=%q want %q", in, got, want)
		}
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(config.DBConfig{Driver: "mysql"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	if _, err := OpenPostgres("  "); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestActiveSlotIndex_AllowsRebookAfterCancel(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	first := mkAppt("2024-06-10", "14:00", "Fön")
	if err := CreateAppointment(ctx, db, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := CreateAppointment(ctx, db, mkAppt("2024-06-10", "14:00", "Fön")); err != ErrDuplicate {
		t.Fatalf("want ErrDuplicate for second active row, got %v", err)
	}
	if ok, err := TransitionAppointmentStatus(ctx, db, first.ID, domain.StatusActive, domain.StatusCancelled); err != nil || !ok {
		t.Fatalf("cancel: ok=%v err=%v", ok, err)
	}
	if err := CreateAppointment(ctx, db, mkAppt("2024-06-10", "14:00", "Fön")); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if isUniqueViolation(nil) {
		t.Fatal("nil is not a violation")
	}
	if !isUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Fatal("ErrDuplicatedKey should match")
	}
	if !isUniqueViolation(errString("UNIQUE constraint failed: appointments.date")) {
		t.Fatal("sqlite text should match")
	}
	if !isUniqueViolation(errString(`ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)`)) {
		t.Fatal("postgres text should match")
	}
	if isUniqueViolation(errString("disk I/O error")) {
		t.Fatal("unrelated error matched")
	}
}

type errString string

func (e errString) Error() string { return string(e) }

// Compile-time guard to ensure signature stability.
var _ func(string) (*gorm.DB, error) = OpenSQLite
