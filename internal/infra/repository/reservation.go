package repository

import (
	"context"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"
	"wheelshare/internal/infra/repository/converter"
	"wheelshare/internal/pkg/pgconv"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query, args, err := db.Psql.
		Select(converter.ReservationColumns("")...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation lookup", err)
	}

	var row converter.ReservationRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.Targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return converter.ReservationToDomain(row)
}

func (r *ReservationRepository) ListBlockingByResource(ctx context.Context, resourceID uuid.UUID) ([]*reservation.Reservation, error) {
	query, args, err := db.Psql.
		Select(converter.ReservationColumns("")...).
		From("reservations").
		Where(squirrel.Eq{
			"resource_id": resourceID,
			"status":      []string{reservation.StatusPending.String(), reservation.StatusApproved.String()},
		}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build blocking reservation query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocking reservations", err)
	}
	return collectReservations(rows)
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	query, args, err := db.Psql.
		Insert("reservations").
		SetMap(converter.ReservationToInsert(res)).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

// UpdateStatus is a compare-and-set on the status column.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, res *reservation.Reservation, expected reservation.Status) error {
	query, args, err := db.Psql.
		Update("reservations").
		Set("status", res.Status().String()).
		Set("total_amount_cents", res.TotalAmount().Cents()).
		Set("updated_at", pgconv.TimeToPgtype(res.UpdatedAt())).
		Where(squirrel.Eq{"id": res.ID(), "status": expected.String()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation status update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindStaleState, "reservation status changed concurrently")
	}
	return nil
}

func collectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		var row converter.ReservationRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		res, err := converter.ReservationToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return out, nil
}
