// Package httpapi wires the HTTP transport (Gin) to the booking services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-booking-backend/internal/catalog"
	"github.com/tbourn/go-booking-backend/internal/clock"
	"github.com/tbourn/go-booking-backend/internal/config"
	"github.com/tbourn/go-booking-backend/internal/events"
	"github.com/tbourn/go-booking-backend/internal/http/handlers"
	"github.com/tbourn/go-booking-backend/internal/http/middleware"
	"github.com/tbourn/go-booking-backend/internal/lock"
	"github.com/tbourn/go-booking-backend/internal/repo"
	"github.com/tbourn/go-booking-backend/internal/schedule"
	"github.com/tbourn/go-booking-backend/internal/services"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// Deps are the collaborators the services need besides the database.
type Deps struct {
	Clock   clock.Clock
	Catalog *catalog.Catalog
	Locks   lock.Locker
	Events  events.Publisher // nil disables publishing

	// NameLocale drives title-casing of customer names.
	NameLocale language.Tag
}

// NewServices builds the booking and query services from cfg.Schedule.
func NewServices(db *gorm.DB, deps Deps, cfg config.Config) (*services.BookingService, *services.QueryService, error) {
	if deps.Clock == nil || deps.Catalog == nil || deps.Locks == nil {
		return nil, nil, errors.New("httpapi: clock, catalog and locks are required")
	}
	sc := cfg.Schedule
	gen, err := schedule.New(sc.OpenTime, sc.CloseTime, sc.SlotMinutes)
	if err != nil {
		return nil, nil, fmt.Errorf("httpapi: schedule: %w", err)
	}

	v := &services.Validator{
		Clock:          deps.Clock,
		Slots:          gen,
		Catalog:        deps.Catalog,
		MaxAdvanceDays: sc.MaxAdvanceDays,
		NameLocale:     deps.NameLocale,
	}
	ledger := &services.Ledger{DB: db, Max: sc.DailyCapacity}

	booking := &services.BookingService{
		DB:             db,
		Clock:          deps.Clock,
		Validator:      v,
		Ledger:         ledger,
		Locks:          deps.Locks,
		Events:         deps.Events,
		IdempotencyTTL: cfg.IdempotencyTTL,
	}
	query := &services.QueryService{
		DB:        db,
		Clock:     deps.Clock,
		Slots:     gen,
		Catalog:   deps.Catalog,
		Ledger:    ledger,
		Validator: v,
	}
	return booking, query, nil
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the booking API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with name/phone scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter and gzip
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per client IP, bypass on replay)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, deps Deps, cfg config.Config) error {
	booking, query, err := NewServices(db, deps, cfg)
	if err != nil {
		return err
	}

	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit, compressed responses
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	// Only booking creation is keyed; other writes ignore the header.
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Routes: []string{http.MethodPost + " " + path.Join("/", cfg.APIBasePath, "appointments")},
		},
		func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			_, err := repo.GetIdempotency(ctx, db, scope, key, now)
			if errors.Is(err, repo.ErrNotFound) {
				return false, nil
			}
			return err == nil, err
		},
	))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP()).
		WithExempt(middleware.ExemptPaths("/health", "/metrics"))
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)

	// Security headers (HSTS only when enabled and request is HTTPS).
	// Booking data changes under the client; never cache it.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(booking, query)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Appointments
		api.POST("/appointments", h.CreateAppointment)
		api.GET("/appointments", h.ListAppointments)
		api.GET("/appointments/:id", h.GetAppointment)
		api.PATCH("/appointments/:id/status", h.UpdateAppointmentStatus)
		api.POST("/appointments/:id/cancel", h.CancelAppointment)
		api.DELETE("/appointments/:id", h.DeleteAppointment)

		// Availability
		api.GET("/slots", h.ListSlots)
		api.GET("/capacity", h.GetCapacity)

		// Catalog and reporting
		api.GET("/services", h.ListServices)
		api.GET("/stats", h.GetStats)
	}
	return nil
}

// corsMiddleware returns the CORS chain. With no allowlist every origin is
// accepted without credentials; otherwise matching origins are echoed back.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{
			"X-Request-ID", "Content-Length", "Location",
			middleware.HeaderIdempotencyReplayed, "Retry-After",
		},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
