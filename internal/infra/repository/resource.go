package repository

import (
	"context"

	"wheelshare/internal/domain/resource"
	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"
	"wheelshare/internal/infra/repository/converter"
	"wheelshare/internal/pkg/pgconv"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(dbtx db.DBTX) *ResourceRepository {
	return &ResourceRepository{db: dbtx}
}

// FindByIDForUpdate takes the row lock that serializes bookings of one resource.
func (r *ResourceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	query, args, err := db.Psql.
		Select(converter.ResourceColumns("")...).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build resource lookup", err)
	}

	var row converter.ResourceRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.Targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")
		}
		return nil, infra.WrapRepoErr("failed to lock resource", err)
	}
	return converter.ResourceToDomain(row)
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	query, args, err := db.Psql.
		Insert("resources").
		SetMap(converter.ResourceToInsert(res)).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build resource insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	query, args, err := db.Psql.
		Update("resources").
		SetMap(converter.ResourceToUpdate(res)).
		Where(squirrel.Eq{"id": res.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build resource update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return nil
}

// RecordCompletion increments the counters in SQL so concurrent completions add up.
func (r *ResourceRepository) RecordCompletion(ctx context.Context, id uuid.UUID, amountCents int64) error {
	query, args, err := db.Psql.
		Update("resources").
		Set("total_rentals", squirrel.Expr("total_rentals + 1")).
		Set("total_earnings_cents", squirrel.Expr("total_earnings_cents + ?", amountCents)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build resource counter update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to record completion", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return nil
}
