package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-booking-backend/internal/domain"
	"github.com/tbourn/go-booking-backend/internal/services"
)

func Test_fail_500_LogsAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// capture logs from LoggerFrom(c)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	// simulate RequestID + request-scoped logger
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-500")
		c.Set("logger", &logger)
		c.Next()
	})

	r.GET("/boom", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "ledger unavailable")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeInternal || resp.Message != "ledger unavailable" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	// ensure something was logged at error level
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_Fail_404_And_SuccessHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// set request id for envelope
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-404")
		c.Next()
	})

	// exported Fail (4xx path)
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})

	// ok helper
	r.GET("/ok", func(c *gin.Context) {
		ok(c, http.StatusCreated, gin.H{"ok": true, "n": 1})
	})

	// noContent helper
	r.DELETE("/gone", func(c *gin.Context) {
		noContent(c)
	})

	// 404
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json 404: %v", err)
	}
	if er.RequestID != "rid-404" || er.Code != ErrCodeNotFound || er.Message != "route not found" {
		t.Fatalf("unexpected 404 body: %+v", er)
	}

	// ok (201)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d", w.Code)
	}
	var okBody map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &okBody); err != nil {
		t.Fatalf("json 201: %v", err)
	}
	if okBody["ok"] != true || int(okBody["n"].(float64)) != 1 {
		t.Fatalf("unexpected ok body: %#v", okBody)
	}

	// noContent (204)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/gone", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body for 204")
	}
}

func Test_writeServiceError_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
		wantReason string
	}{
		{"validation", &services.ValidationError{Field: "phone", Message: "must contain 10 to 15 digits"},
			http.StatusBadRequest, ErrCodeValidation, "phone", ""},
		{"force missing", &services.ValidationError{Field: services.FieldForce, Message: "confirm"},
			http.StatusPreconditionRequired, ErrCodeConfirmationRequired, services.FieldForce, ""},
		{"slot taken", &services.ConflictError{Reason: services.ReasonSlotTaken, Date: "2024-06-01", Time: "10:00"},
			http.StatusConflict, ErrCodeConflict, "", services.ReasonSlotTaken},
		{"day full", &services.ConflictError{Reason: services.ReasonDayFull, Date: "2024-06-01"},
			http.StatusConflict, ErrCodeConflict, "", services.ReasonDayFull},
		{"not found", &services.NotFoundError{ID: 9},
			http.StatusNotFound, ErrCodeNotFound, "", ""},
		{"invalid transition", &services.InvalidTransitionError{ID: 9, From: domain.StatusCompleted, To: domain.StatusCancelled},
			http.StatusConflict, ErrCodeInvalidTransition, "", ""},
		{"storage", &services.StorageError{Op: "insert", Err: errors.New("disk I/O error")},
			http.StatusInternalServerError, ErrCodeInternal, "", ""},
		{"wrapped conflict", fmt.Errorf("book: %w", &services.ConflictError{Reason: services.ReasonSlotPast, Date: "2024-06-01", Time: "07:00"}),
			http.StatusConflict, ErrCodeConflict, "", services.ReasonSlotPast},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			r := gin.New()
			r.Use(func(c *gin.Context) { c.Set("logger", &logger); c.Next() })
			r.GET("/x", func(c *gin.Context) { writeServiceError(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			if w.Code != tc.wantStatus {
				t.Fatalf("status=%d want %d", w.Code, tc.wantStatus)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("json: %v", err)
			}
			if resp.Code != tc.wantCode || resp.Field != tc.wantField || resp.Reason != tc.wantReason {
				t.Fatalf("unexpected body: %+v", resp)
			}
			if tc.wantStatus == http.StatusInternalServerError {
				if strings.Contains(resp.Message, "disk") {
					t.Fatalf("storage detail leaked to client: %q", resp.Message)
				}
				if !strings.Contains(buf.String(), "disk I/O error") {
					t.Fatalf("expected cause in server log, got: %s", buf.String())
				}
			}
		})
	}
}
