package queries

import (
	"context"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/mock_reservation.go -package=queriesmock

// ReservationFilter narrows a reservation listing. Zero values mean "any".
type ReservationFilter struct {
	// ParticipantID restricts results to reservations the user requested or provides.
	ParticipantID *uuid.UUID
	Kind          *resource.Kind
	Status        *reservation.Status
	After         *CursorPosition
	Limit         int
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// List returns matches ordered by created_at DESC, id DESC.
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
}

type ListReservationsOptions struct {
	Kind   *resource.Kind
	Status *reservation.Status
	Cursor string
	Limit  int
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor reservation.Actor, id uuid.UUID) (*ReservationView, error)
	ListFor(ctx context.Context, actor reservation.Actor, opts ListReservationsOptions) (*ReservationPage, error)
}

type reservationQueriesImpl struct {
	readStore    ReservationReadStore
	defaultLimit int
}

func NewReservationQueries(readStore ReservationReadStore, defaultLimit int) ReservationQueries {
	return &reservationQueriesImpl{
		readStore:    readStore,
		defaultLimit: defaultLimit,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor reservation.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "load reservation")
	}

	if !canView(actor, view) {
		return nil, reservation.ErrNotParticipant
	}
	return view, nil
}

// ListFor returns the actor's reservations newest first. Admins see every reservation.
func (q *reservationQueriesImpl) ListFor(ctx context.Context, actor reservation.Actor, opts ListReservationsOptions) (*ReservationPage, error) {
	after, err := DecodeAfterCursor(opts.Cursor)
	if err != nil {
		return nil, err
	}
	limit := ValidateLimit(opts.Limit, q.defaultLimit)

	filter := ReservationFilter{
		Kind:   opts.Kind,
		Status: opts.Status,
		After:  after,
		Limit:  limit + 1,
	}
	if !actor.Role.IsAdmin() {
		id := actor.ID
		filter.ParticipantID = &id
	}

	rows, err := q.readStore.List(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "list reservations")
	}

	page := &ReservationPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = EncodeAfterCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func canView(actor reservation.Actor, view *ReservationView) bool {
	return actor.Role.IsAdmin() || actor.ID == view.RequesterID || actor.ID == view.ProviderID
}
