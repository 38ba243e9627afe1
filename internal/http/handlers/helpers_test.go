package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-booking-backend/internal/catalog"
	"github.com/tbourn/go-booking-backend/internal/clock"
	"github.com/tbourn/go-booking-backend/internal/events"
	"github.com/tbourn/go-booking-backend/internal/http/middleware"
	"github.com/tbourn/go-booking-backend/internal/lock"
	"github.com/tbourn/go-booking-backend/internal/repo"
	"github.com/tbourn/go-booking-backend/internal/schedule"
	"github.com/tbourn/go-booking-backend/internal/services"
)

// testNow is 2024-06-01 08:00 UTC, before opening time.
var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type api struct {
	r     *gin.Engine
	db    *gorm.DB
	clock *clock.Fixed
}

func newBookingDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:booking_handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newAPI wires real services (capacity 3, 09:00-12:00 every 30 minutes) over
// a fresh database and mounts every endpoint at the root.
func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newBookingDB(t)
	clk := clock.NewFixed(testNow)
	gen := schedule.MustNew("09:00", "12:00", 30)
	cat := catalog.Default()
	v := &services.Validator{Clock: clk, Slots: gen, Catalog: cat, MaxAdvanceDays: 30, NameLocale: language.Turkish}
	ledger := &services.Ledger{DB: db, Max: 3}

	booking := &services.BookingService{
		DB: db, Clock: clk, Validator: v, Ledger: ledger,
		Locks: lock.NewMemory(), Events: &events.Recorder{}, IdempotencyTTL: time.Hour,
	}
	query := &services.QueryService{DB: db, Clock: clk, Slots: gen, Catalog: cat, Ledger: ledger, Validator: v}
	h := New(booking, query)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.POST("/appointments", h.CreateAppointment)
	r.GET("/appointments", h.ListAppointments)
	r.GET("/appointments/:id", h.GetAppointment)
	r.PATCH("/appointments/:id/status", h.UpdateAppointmentStatus)
	r.POST("/appointments/:id/cancel", h.CancelAppointment)
	r.DELETE("/appointments/:id", h.DeleteAppointment)
	r.GET("/slots", h.ListSlots)
	r.GET("/capacity", h.GetCapacity)
	r.GET("/services", h.ListServices)
	r.GET("/stats", h.GetStats)

	return &api{r: r, db: db, clock: clk}
}

func (a *api) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func booking(date, hhmm string) CreateAppointmentRequest {
	return CreateAppointmentRequest{
		Name:    "ayşe yılmaz",
		Phone:   "+90 532 123 45 67",
		Service: "Fön",
		Date:    date,
		Time:    hhmm,
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status=%d want %d (body=%s)", w.Code, want, w.Body.String())
	}
}

// mustCreate books a slot through the API and returns its id.
func (a *api) mustCreate(t *testing.T, date, hhmm string) int64 {
	t.Helper()
	w := a.do(t, http.MethodPost, "/appointments", booking(date, hhmm))
	expectStatus(t, w, http.StatusCreated)
	return decode[struct {
		ID int64 `json:"id"`
	}](t, w).ID
}
