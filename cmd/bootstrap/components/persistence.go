package components

import (
	"wheelshare/internal/infra/memstore"
	"wheelshare/internal/infra/outbox"
	"wheelshare/internal/infra/readstore"
	"wheelshare/internal/infra/repository"
	"wheelshare/internal/infra/uow"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
)

// Stores is everything the use cases and the relay need from storage.
type Stores struct {
	fx.Out

	UnitOfWork   shared.UnitOfWork
	Reservations queries.ReservationReadStore
	Resources    queries.ResourceReadStore
	Users        queries.UserReadStore
	Outbox       outbox.Store
}

func NewStores(pool *pgxpool.Pool, cfg config.Config) Stores {
	if cfg.Reservation.UsesMemoryStore() {
		store := memstore.New()
		return Stores{
			UnitOfWork:   store,
			Reservations: store.ReservationReads(),
			Resources:    store.ResourceReads(),
			Users:        store.UserReads(),
			Outbox:       store.OutboxStore(),
		}
	}

	return Stores{
		UnitOfWork:   uow.NewPostgresUoW(pool),
		Reservations: readstore.NewReservationReadStore(pool),
		Resources:    readstore.NewResourceReadStore(pool),
		Users:        readstore.NewUserReadStore(pool),
		Outbox:       repository.NewOutboxRepository(pool),
	}
}
