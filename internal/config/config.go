// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, storage, business hours, booking capacity,
// rate limiting, locking, events, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on minimal images

	"golang.org/x/text/language"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-booking-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DBConfig selects the storage backend.
type DBConfig struct {
	Driver string // sqlite|postgres
	Path   string // SQLite path
	URL    string // Postgres DSN
}

// ScheduleConfig describes business hours and booking limits.
type ScheduleConfig struct {
	Timezone       string // IANA zone used for "today" and "past"
	OpenTime       string // HH:MM, inclusive
	CloseTime      string // HH:MM, exclusive
	SlotMinutes    int
	DailyCapacity  int // max active appointments per date
	MaxAdvanceDays int // booking horizon, inclusive
	CatalogFile    string
	NameLocale     string // BCP 47 tag for title-casing customer names
}

// LockConfig selects the booking critical-section backend.
type LockConfig struct {
	Backend   string        // memory|redis
	TTL       time.Duration // redis lock lease
	RedisAddr string
}

// EventsConfig configures appointment event publishing.
type EventsConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DB       DBConfig
	Schedule ScheduleConfig
	Lock     LockConfig
	Events   EventsConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DB: DBConfig{
			Driver: strings.ToLower(getenv("DB_DRIVER", "sqlite")),
			Path:   getenv("DB_PATH", "booking.db"),
			URL:    getenv("DATABASE_URL", ""),
		},
		Schedule: ScheduleConfig{
			Timezone:       getenv("TIMEZONE", "Europe/Istanbul"),
			OpenTime:       getenv("OPEN_TIME", "09:00"),
			CloseTime:      getenv("CLOSE_TIME", "19:00"),
			SlotMinutes:    getint("SLOT_MINUTES", 30),
			DailyCapacity:  getint("DAILY_CAPACITY", 20),
			MaxAdvanceDays: getint("MAX_ADVANCE_DAYS", 30),
			CatalogFile:    getenv("CATALOG_FILE", ""),
			NameLocale:     getenv("NAME_LOCALE", "tr"),
		},
		Lock: LockConfig{
			Backend:   strings.ToLower(getenv("LOCK_BACKEND", "memory")),
			TTL:       getdur("LOCK_TTL", 10*time.Second),
			RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
		},
		Events: EventsConfig{
			Enabled: getbool("EVENTS_ENABLED", false),
			Brokers: splitCSV(getenv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getenv("KAFKA_TOPIC", "appointments"),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-booking-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	switch cfg.DB.Driver {
	case "sqlite":
		if strings.TrimSpace(cfg.DB.Path) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case "postgres":
		if strings.TrimSpace(cfg.DB.URL) == "" {
			return cfg, errors.New("DATABASE_URL must be set when DB_DRIVER=postgres")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
	}
	if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
		return cfg, errors.New("TIMEZONE must be a valid IANA time zone")
	}
	open, errOpen := parseClock(cfg.Schedule.OpenTime)
	closing, errClose := parseClock(cfg.Schedule.CloseTime)
	if errOpen != nil || errClose != nil {
		return cfg, errors.New("OPEN_TIME and CLOSE_TIME must be HH:MM")
	}
	if open >= closing {
		return cfg, errors.New("OPEN_TIME must be before CLOSE_TIME")
	}
	if cfg.Schedule.SlotMinutes <= 0 || cfg.Schedule.SlotMinutes > closing-open {
		return cfg, errors.New("SLOT_MINUTES must be > 0 and fit within business hours")
	}
	if cfg.Schedule.DailyCapacity < 1 {
		return cfg, errors.New("DAILY_CAPACITY must be >= 1")
	}
	if cfg.Schedule.MaxAdvanceDays < 0 {
		return cfg, errors.New("MAX_ADVANCE_DAYS must be >= 0")
	}
	if _, err := language.Parse(cfg.Schedule.NameLocale); err != nil {
		return cfg, errors.New("NAME_LOCALE must be a BCP 47 language tag")
	}
	switch cfg.Lock.Backend {
	case "memory":
	case "redis":
		if strings.TrimSpace(cfg.Lock.RedisAddr) == "" {
			return cfg, errors.New("REDIS_ADDR must be set when LOCK_BACKEND=redis")
		}
		if cfg.Lock.TTL <= 0 {
			return cfg, errors.New("LOCK_TTL must be > 0")
		}
	default:
		return cfg, errors.New("LOCK_BACKEND must be one of: memory, redis")
	}
	if cfg.Events.Enabled && (len(cfg.Events.Brokers) == 0 || strings.TrimSpace(cfg.Events.Topic) == "") {
		return cfg, errors.New("KAFKA_BROKERS and KAFKA_TOPIC must be set when EVENTS_ENABLED")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
