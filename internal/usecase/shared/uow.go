package shared

import (
	"context"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction. Retryable conflicts rerun fn from scratch.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to the running transaction.
type Tx interface {
	Reservations() ReservationRepository
	Resources() ResourceRepository
	Users() UserRepository
	Outbox() OutboxRepository
}

type ReservationRepository interface {
	// FindByIDForUpdate loads the reservation and holds its row lock until commit.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ListBlockingByResource returns pending and approved reservations of the resource.
	ListBlockingByResource(ctx context.Context, resourceID uuid.UUID) ([]*reservation.Reservation, error)
	Create(ctx context.Context, r *reservation.Reservation) error
	// UpdateStatus persists status and amount only if the stored status still equals expected.
	UpdateStatus(ctx context.Context, r *reservation.Reservation, expected reservation.Status) error
}

type ResourceRepository interface {
	// FindByIDForUpdate locks the resource row, serializing bookings against it.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	Create(ctx context.Context, res *resource.Resource) error
	Update(ctx context.Context, res *resource.Resource) error
	// RecordCompletion atomically adds one rental and amountCents to the counters.
	RecordCompletion(ctx context.Context, id uuid.UUID, amountCents int64) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type OutboxRepository interface {
	Append(ctx context.Context, event OutboxEvent) error
}
