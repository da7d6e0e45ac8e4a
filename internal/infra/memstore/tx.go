package memstore

import (
	"context"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"
	"wheelshare/internal/infra"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

// memTx runs with Store.mu held.
type memTx struct {
	store *Store
}

func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{t.store} }
func (t *memTx) Resources() shared.ResourceRepository       { return resourceRepo{t.store} }
func (t *memTx) Users() shared.UserRepository               { return userRepo{t.store} }
func (t *memTx) Outbox() shared.OutboxRepository            { return outboxRepo{t.store} }

type reservationRepo struct{ s *Store }

func (r reservationRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	stored, ok := r.s.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return cloneReservation(stored), nil
}

func (r reservationRepo) ListBlockingByResource(_ context.Context, resourceID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, stored := range r.s.reservations {
		if stored.ResourceID() == resourceID && stored.IsBlocking() {
			out = append(out, cloneReservation(stored))
		}
	}
	return out, nil
}

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.s.reservations[res.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "reservation already exists")
	}
	if _, ok := r.s.resources[res.ResourceID()]; !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "resource does not exist")
	}
	// mirrors the database exclusion constraint
	var blocking []*reservation.Reservation
	for _, stored := range r.s.reservations {
		if stored.ResourceID() == res.ResourceID() {
			blocking = append(blocking, stored)
		}
	}
	if !reservation.IsRangeFree(blocking, res.TimeSlot()) {
		return infra.NewRepoErr(infra.KindConflict, "reservation overlaps an existing one")
	}
	r.s.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r reservationRepo) UpdateStatus(_ context.Context, res *reservation.Reservation, expected reservation.Status) error {
	stored, ok := r.s.reservations[res.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	if stored.Status() != expected {
		return infra.NewRepoErr(infra.KindStaleState, "reservation status changed concurrently")
	}
	r.s.reservations[res.ID()] = cloneReservation(res)
	return nil
}

type resourceRepo struct{ s *Store }

func (r resourceRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	stored, ok := r.s.resources[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return cloneResource(stored), nil
}

func (r resourceRepo) Create(_ context.Context, res *resource.Resource) error {
	if _, ok := r.s.resources[res.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "resource already exists")
	}
	if _, ok := r.s.users[res.OwnerID()]; !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "owner does not exist")
	}
	r.s.resources[res.ID()] = cloneResource(res)
	return nil
}

func (r resourceRepo) Update(_ context.Context, res *resource.Resource) error {
	stored, ok := r.s.resources[res.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	// counters belong to RecordCompletion; keep the stored values
	updated := resource.ReconstructResource(
		res.ID(), res.Kind(), res.OwnerID(),
		res.Name(), res.Description(), res.Location(),
		res.UnitPriceCents(), res.IsAvailable(),
		stored.TotalRentals(), stored.TotalEarningsCents(),
		stored.CreatedAt(), res.UpdatedAt(),
	)
	r.s.resources[res.ID()] = updated
	return nil
}

func (r resourceRepo) RecordCompletion(_ context.Context, id uuid.UUID, amountCents int64) error {
	stored, ok := r.s.resources[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	next := cloneResource(stored)
	next.RecordCompletion(amountCents)
	r.s.resources[id] = next
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.s.users {
		if existing.Email().Value() == u.Email().Value() {
			return infra.NewRepoErr(infra.KindDuplicateKey, "email already registered")
		}
	}
	r.s.users[u.ID()] = cloneUser(u)
	return nil
}

func (r userRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	stored, ok := r.s.users[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	r.s.users[id] = user.ReconstructUser(
		stored.ID(), stored.Email(), stored.Name(), stored.PasswordHash(), stored.Role(),
		&at, stored.IsActive(), stored.CreatedAt(), at,
	)
	return nil
}

type outboxRepo struct{ s *Store }

func (r outboxRepo) Append(_ context.Context, event shared.OutboxEvent) error {
	r.s.outbox = append(r.s.outbox, &outboxEntry{event: event})
	return nil
}
