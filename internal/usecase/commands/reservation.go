package commands

import (
	"context"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/mock_reservation.go -package=commandsmock

var ErrKindMismatch = errs.Define("resource does not match the requested reservation type", errs.ErrValidation)

type ServiceInput struct {
	VehicleType string
	ServiceType string
	Location    string
	IsEmergency bool
}

type CreateReservationInput struct {
	ResourceID uuid.UUID
	// ExpectedKind pins the resource kind for kind-specific endpoints.
	ExpectedKind *resource.Kind
	Start        time.Time
	End          time.Time
	Notes        string
	Service      *ServiceInput
}

type UpdateStatusInput struct {
	Status      string
	AmountCents *int64
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, actor reservation.Actor, in CreateReservationInput) (*queries.ReservationView, error)
	UpdateStatus(ctx context.Context, actor reservation.Actor, id uuid.UUID, in UpdateStatusInput) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.ReservationReadStore
	factory   *reservation.Factory
	policy    reservation.TransitionPolicy
	clock     clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	readStore queries.ReservationReadStore,
	factory *reservation.Factory,
	clock clock.Clock,
	cfg config.ReservationConfig,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		readStore: readStore,
		factory:   factory,
		policy:    reservation.TransitionPolicy{LateCancelWindow: cfg.LateCancelWindow},
		clock:     clock,
	}
}

func (c *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	actor reservation.Actor,
	in CreateReservationInput,
) (*queries.ReservationView, error) {
	now := c.clock.Now()

	req, err := buildRequest(actor, in, now)
	if err != nil {
		return nil, err
	}

	var created *reservation.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().FindByIDForUpdate(ctx, in.ResourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return resource.ErrResourceNotFound
			}
			return err
		}
		if in.ExpectedKind != nil && res.Kind() != *in.ExpectedKind {
			return ErrKindMismatch
		}

		existing, err := tx.Reservations().ListBlockingByResource(ctx, res.ID())
		if err != nil {
			return err
		}

		r, err := c.factory.CreateReservation(res, req, existing)
		if err != nil {
			return err
		}

		if err := tx.Reservations().Create(ctx, r); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return reservation.ErrRangeUnavailable
			}
			return err
		}

		if err := appendEvent(ctx, tx, shared.EventReservationCreated, r, "", actor.ID, now); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, "create reservation")
	}

	return c.readBack(ctx, created.ID())
}

func (c *reservationCommandsImpl) UpdateStatus(
	ctx context.Context,
	actor reservation.Actor,
	id uuid.UUID,
	in UpdateStatusInput,
) (*queries.ReservationView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return reservation.ErrReservationNotFound
			}
			return err
		}

		target, err := reservation.ParseStatus(in.Status)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		from := r.Status()
		outcome, err := r.ApplyTransition(actor, target, in.AmountCents, now, c.policy)
		if err != nil {
			return err
		}

		if err := tx.Reservations().UpdateStatus(ctx, r, from); err != nil {
			if infra.IsKind(err, infra.KindStaleState) {
				return reservation.ErrIllegalTransition
			}
			return err
		}

		if outcome.RecordCompletion {
			if err := tx.Resources().RecordCompletion(ctx, r.ResourceID(), r.TotalAmount().Cents()); err != nil {
				return err
			}
		}

		return appendEvent(ctx, tx, shared.EventReservationStatusChanged, r, from, actor.ID, now)
	})
	if err != nil {
		return nil, errs.Wrap(err, "update reservation status")
	}

	return c.readBack(ctx, id)
}

// readBack loads the committed reservation through the read side.
func (c *reservationCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view, err := c.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "read reservation after write")
	}
	return view, nil
}

func buildRequest(actor reservation.Actor, in CreateReservationInput, now time.Time) (reservation.Request, error) {
	slot, err := reservation.NewTimeSlot(in.Start, in.End, now)
	if err != nil {
		return reservation.Request{}, err
	}
	note, err := reservation.NewNote(in.Notes)
	if err != nil {
		return reservation.Request{}, err
	}

	req := reservation.Request{Requester: actor, Slot: slot, Note: note}
	if in.Service != nil {
		details, err := reservation.NewServiceDetails(
			in.Service.VehicleType,
			in.Service.ServiceType,
			in.Service.Location,
			in.Service.IsEmergency,
		)
		if err != nil {
			return reservation.Request{}, err
		}
		req.Service = &details
	}
	return req, nil
}

func appendEvent(
	ctx context.Context,
	tx shared.Tx,
	eventType string,
	r *reservation.Reservation,
	previous reservation.Status,
	actorID uuid.UUID,
	at time.Time,
) error {
	event, err := shared.NewReservationEvent(eventType, r, previous, actorID, shared.CorrelationID(ctx), at)
	if err != nil {
		return errs.Wrap(err, "encode reservation event")
	}
	return tx.Outbox().Append(ctx, event)
}
