// Package services – BookingService
//
// BookingService owns every write to the appointment book: creating a
// booking, moving an appointment to a terminal status, and hard-deleting a
// terminal record. A booking runs under a per-date lock and inside one
// database transaction that reserves capacity, re-checks the slot and
// inserts the row, so a failure at any step leaves nothing behind.
//
// Observability: public methods are OpenTelemetry-instrumented and record
// booking metrics; events are published after commit.
package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-booking-backend/internal/clock"
	"github.com/tbourn/go-booking-backend/internal/domain"
	"github.com/tbourn/go-booking-backend/internal/events"
	"github.com/tbourn/go-booking-backend/internal/lock"
	"github.com/tbourn/go-booking-backend/internal/observability"
	"github.com/tbourn/go-booking-backend/internal/repo"
)

// BookingService coordinates bookings and status changes.
type BookingService struct {
	DB        *gorm.DB
	Clock     clock.Clock
	Validator *Validator
	Ledger    *Ledger
	Locks     lock.Locker
	Events    events.Publisher // optional

	// IdempotencyTTL bounds how long BookOnce remembers a key.
	IdempotencyTTL time.Duration
}

var tracer = observability.Tracer("services")

// errReplay aborts a booking transaction whose idempotency key is already used.
var errReplay = errors.New("idempotency key already used")

// Book validates req and books the slot. Failures are *ValidationError,
// *ConflictError or *StorageError.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*domain.Appointment, error) {
	a, _, err := s.book(ctx, req, "", "", "")
	return a, err
}

// BookOnce is Book keyed by (scope, key). A retry with a known key returns
// the appointment created by the first call and replayed=true, without
// booking again. Reusing a key for a different booking is a
// *ValidationError on the idempotency_key field.
func (s *BookingService) BookOnce(ctx context.Context, scope, key string, req BookRequest) (a *domain.Appointment, replayed bool, err error) {
	if key == "" {
		return s.book(ctx, req, "", "", "")
	}
	fp := s.Validator.Fingerprint(req)
	if a, ok, err := s.replay(ctx, s.DB, scope, key, fp); err != nil || ok {
		if ok {
			observability.BookingAttempt(observability.OutcomeReplayed)
		}
		return a, ok, err
	}
	return s.book(ctx, req, scope, key, fp)
}

func (s *BookingService) replay(ctx context.Context, db *gorm.DB, scope, key, fp string) (*domain.Appointment, bool, error) {
	rec, err := repo.GetIdempotency(ctx, db, scope, key, time.Now())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storage("read idempotency", err)
	}
	// Rows written before fingerprints existed carry no hash.
	if rec.RequestHash != "" && rec.RequestHash != fp {
		return nil, false, invalid(FieldIdempotencyKey, "key reused with a different request")
	}
	a, err := repo.GetAppointment(ctx, db, rec.AppointmentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// The appointment this key created has since been deleted.
			return nil, false, invalid(FieldIdempotencyKey, "key was already used for an appointment that no longer exists")
		}
		return nil, false, storage("read appointment", err)
	}
	return a, true, nil
}

func (s *BookingService) book(ctx context.Context, req BookRequest, scope, key, fp string) (*domain.Appointment, bool, error) {
	ctx, span := tracer.Start(ctx, "BookingService.Book",
		trace.WithAttributes(
			attribute.String("booking.date", req.Date),
			attribute.String("booking.time", req.Time),
			attribute.String("booking.service", req.Service),
		),
	)
	defer span.End()

	a, replayed, err := s.doBook(ctx, req, scope, key, fp)
	outcome := bookingOutcome(err)
	if replayed {
		outcome = observability.OutcomeReplayed
	}
	observability.BookingAttempt(outcome)
	if err != nil {
		span.SetAttributes(attribute.String("booking.outcome", outcome))
		if outcome == observability.OutcomeError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error().Err(err).Str("date", req.Date).Str("time", req.Time).Msg("booking_failed")
		}
		return nil, false, err
	}
	span.SetAttributes(attribute.Int64("appointment.id", a.ID))
	if !replayed {
		log.Info().Int64("id", a.ID).Str("date", a.Date).Str("time", a.Time).Str("service", a.Service).Msg("booking_created")
		s.publish(ctx, events.TypeCreated, *a, "")
	}
	return a, replayed, nil
}

func (s *BookingService) doBook(ctx context.Context, req BookRequest, scope, key, fp string) (*domain.Appointment, bool, error) {
	in, err := s.Validator.Booking(req)
	if err != nil {
		return nil, false, err
	}

	// Cheap pre-checks outside the lock so obvious conflicts do not queue.
	if err := s.checkSlot(ctx, s.DB, in.Date, in.Time); err != nil {
		return nil, false, err
	}
	if full, err := s.Ledger.IsDayFull(ctx, in.Date); err != nil {
		return nil, false, err
	} else if full {
		return nil, false, conflict(ReasonDayFull, in.Date, in.Time)
	}

	waitStart := time.Now()
	unlock, err := s.Locks.Lock(ctx, "booking:"+in.Date)
	if err != nil {
		return nil, false, storage("acquire booking lock", err)
	}
	defer unlock()
	observability.LockWait(time.Since(waitStart))

	var created *domain.Appointment
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Write first: the reservation takes the write lock before any read.
		if err := s.Ledger.Reserve(ctx, tx, in.Date); err != nil {
			return err
		}
		if err := s.checkSlot(ctx, tx, in.Date, in.Time); err != nil {
			return err
		}
		a := &domain.Appointment{Name: in.Name, Phone: in.Phone, Service: in.Service, Date: in.Date, Time: in.Time}
		if err := repo.CreateAppointment(ctx, tx, a); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return conflict(ReasonSlotTaken, in.Date, in.Time)
			}
			return storage("create appointment", err)
		}
		if key != "" {
			if _, err := repo.CreateIdempotency(ctx, tx, scope, key, fp, a.ID, http.StatusCreated, s.idempotencyTTL()); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					return errReplay
				}
				return storage("store idempotency", err)
			}
		}
		created = a
		return nil
	})
	if errors.Is(err, errReplay) {
		a, ok, rerr := s.replay(ctx, s.DB, scope, key, fp)
		if rerr != nil {
			return nil, false, rerr
		}
		if ok {
			return a, true, nil
		}
		return nil, false, storage("replay idempotency", errReplay)
	}
	if err != nil {
		return nil, false, storage("book", err)
	}
	return created, false, nil
}

// checkSlot returns a ConflictError unless (date, hhmm) is available.
// Booked wins over past.
func (s *BookingService) checkSlot(ctx context.Context, db *gorm.DB, date, hhmm string) error {
	taken, err := repo.IsSlotActive(ctx, db, date, hhmm)
	if err != nil {
		return storage("read slot", err)
	}
	if taken {
		return conflict(ReasonSlotTaken, date, hhmm)
	}
	if slotIsPast(date, hhmm, s.Clock.Now()) {
		return conflict(ReasonSlotPast, date, hhmm)
	}
	return nil
}

// Transition moves an active appointment to completed or cancelled and
// releases its capacity in the same transaction.
func (s *BookingService) Transition(ctx context.Context, id int64, to domain.Status) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "BookingService.Transition",
		trace.WithAttributes(
			attribute.Int64("appointment.id", id),
			attribute.String("status.to", string(to)),
		),
	)
	defer span.End()

	if !to.Valid() {
		return nil, invalid("status", "must be one of active, completed, cancelled")
	}

	var (
		updated *domain.Appointment
		from    domain.Status
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Write first, as in booking: the conditional update takes the write
		// lock before any read.
		if domain.CanTransition(domain.StatusActive, to) {
			ok, err := repo.TransitionAppointmentStatus(ctx, tx, id, domain.StatusActive, to)
			if err != nil {
				return storage("update status", err)
			}
			if ok {
				a, err := s.get(ctx, tx, id)
				if err != nil {
					return err
				}
				from = domain.StatusActive
				if err := s.Ledger.Release(ctx, tx, a.Date); err != nil {
					return err
				}
				updated = a
				return nil
			}
		}
		// Not active (or not a valid target): report what the record holds.
		cur, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		return &InvalidTransitionError{ID: id, From: cur.Status, To: to}
	})
	if err != nil {
		err = storage("transition", err)
		if errors.Is(err, ErrStorage) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error().Err(err).Int64("id", id).Str("to", string(to)).Msg("transition_failed")
		}
		return nil, err
	}

	observability.Transition(string(to))
	log.Info().Int64("id", id).Str("from", string(from)).Str("to", string(to)).Msg("appointment_status_changed")
	s.publish(ctx, events.TypeStatusChanged, *updated, from)
	return updated, nil
}

// Cancel is Transition(id, cancelled).
func (s *BookingService) Cancel(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.Transition(ctx, id, domain.StatusCancelled)
}

// Delete permanently removes a completed or cancelled appointment. force
// must be true; active appointments are refused. Capacity is untouched
// because terminal records no longer hold any.
func (s *BookingService) Delete(ctx context.Context, id int64, force bool) error {
	ctx, span := tracer.Start(ctx, "BookingService.Delete",
		trace.WithAttributes(
			attribute.Int64("appointment.id", id),
			attribute.Bool("force", force),
		),
	)
	defer span.End()

	if !force {
		return invalid(FieldForce, "deletion is permanent and must be confirmed with force=true")
	}

	var deleted *domain.Appointment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if a.Status == domain.StatusActive {
			return &InvalidTransitionError{ID: id, From: a.Status, To: statusDeleted}
		}
		ok, err := repo.DeleteAppointment(ctx, tx, id)
		if err != nil {
			return storage("delete appointment", err)
		}
		if !ok {
			return &NotFoundError{ID: id}
		}
		deleted = a
		return nil
	})
	if err != nil {
		return storage("delete", err)
	}

	observability.Deleted()
	log.Info().Int64("id", id).Msg("appointment_deleted")
	s.publish(ctx, events.TypeDeleted, *deleted, deleted.Status)
	return nil
}

func (s *BookingService) get(ctx context.Context, db *gorm.DB, id int64) (*domain.Appointment, error) {
	a, err := repo.GetAppointment(ctx, db, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, storage("read appointment", err)
	}
	return a, nil
}

// publish sends an event after commit. Failures are logged and counted.
func (s *BookingService) publish(ctx context.Context, typ string, a domain.Appointment, from domain.Status) {
	if s.Events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pctx, events.New(typ, a, from)); err != nil {
		observability.EventPublishFailed()
		log.Warn().Err(err).Str("type", typ).Int64("id", a.ID).Msg("event_publish_failed")
	}
}

func (s *BookingService) idempotencyTTL() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return 24 * time.Hour
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeCreated
	case errors.Is(err, ErrValidation):
		return observability.OutcomeInvalid
	case errors.Is(err, ErrSlotTaken):
		return observability.OutcomeSlotTaken
	case errors.Is(err, ErrSlotPast):
		return observability.OutcomeSlotPast
	case errors.Is(err, ErrDayFull):
		return observability.OutcomeDayFull
	default:
		return observability.OutcomeError
	}
}
