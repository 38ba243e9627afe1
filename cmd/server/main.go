// Command server runs the salon booking API.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-booking-backend/docs"
	"github.com/tbourn/go-booking-backend/internal/catalog"
	"github.com/tbourn/go-booking-backend/internal/clock"
	"github.com/tbourn/go-booking-backend/internal/config"
	"github.com/tbourn/go-booking-backend/internal/events"
	httpapi "github.com/tbourn/go-booking-backend/internal/http"
	"github.com/tbourn/go-booking-backend/internal/lock"
	"github.com/tbourn/go-booking-backend/internal/observability"
	"github.com/tbourn/go-booking-backend/internal/repo"
	"github.com/tbourn/go-booking-backend/internal/sysutil"
)

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init -d ../.. -g cmd/server/main.go -o ../../docs --parseInternal

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownTimeout = 15 * time.Second
	purgeEvery      = time.Hour
)

// @title           Salon Booking API
// @version         1.0
// @description     Appointment booking with a per-day capacity ledger, slot availability and status lifecycle.
// @contact.name    API Support
// @license.name    MIT
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https
func main() {
	cfg := config.MustLoad()
	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
	sysutil.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)

	if err := run(cfg, appVersion); err != nil {
		log.Fatal().Err(err).Msg("server_exit")
	}
}

func run(cfg config.Config, appVersion string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion)
	if err != nil {
		log.Error().Err(err).Msg("otel_setup_failed")
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(sctx)
		}()
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return err
	}
	cat, err := catalog.LoadOrDefault(cfg.Schedule.CatalogFile)
	if err != nil {
		return err
	}

	locks, closeLocks, err := newLocker(ctx, cfg.Lock)
	if err != nil {
		return err
	}
	defer closeLocks()

	publisher := newPublisher(cfg.Events)
	defer publisher.Close()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	deps := httpapi.Deps{
		Clock:      clock.NewSystem(loc),
		Catalog:    cat,
		Locks:      locks,
		Events:     publisher,
		NameLocale: language.Make(cfg.Schedule.NameLocale),
	}
	if err := httpapi.RegisterRoutes(r, db, deps, cfg); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", appVersion).
			Str("timezone", loc.String()).
			Int("daily_capacity", cfg.Schedule.DailyCapacity).
			Msg("server_listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		purgeIdempotency(gctx, db)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("server_shutting_down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// openDB connects, installs tracing, migrates, and resyncs the capacity
// ledger with the active appointments.
func openDB(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	db, err := repo.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			return nil, err
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, err
	}
	n, err := repo.RebuildCapacity(ctx, db)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.DB.Driver).Int64("capacity_days", n).Msg("database_ready")
	return db, nil
}

// newLocker returns the booking lock backend and its cleanup.
func newLocker(ctx context.Context, cfg config.LockConfig) (lock.Locker, func(), error) {
	if cfg.Backend != "redis" {
		return lock.NewMemory(), func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis_lock_ready")
	return lock.NewRedis(rdb, cfg.TTL, "booking"), func() { _ = rdb.Close() }, nil
}

func newPublisher(cfg config.EventsConfig) events.Publisher {
	if !cfg.Enabled {
		return events.Noop{}
	}
	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("kafka_events_enabled")
	return events.NewKafka(cfg.Brokers, cfg.Topic)
}

// purgeIdempotency drops expired idempotency keys until ctx ends.
func purgeIdempotency(ctx context.Context, db *gorm.DB) {
	t := time.NewTicker(purgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now)
			if err != nil {
				log.Warn().Err(err).Msg("idempotency_purge_failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("idempotency_purged")
			}
		}
	}
}
