package readstore

import (
	"context"
	"strings"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"
	"wheelshare/internal/infra/repository/converter"
	"wheelshare/internal/pkg/pgconv"
	"wheelshare/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx}
}

func (r *ResourceReadStore) baseQuery() squirrel.SelectBuilder {
	cols := append(converter.ResourceColumns("res"), "o.name")
	return db.Psql.
		Select(cols...).
		From("resources res").
		Join("users o ON o.id = res.owner_id")
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	query, args, err := r.baseQuery().Where(squirrel.Eq{"res.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build resource query", err)
	}

	var row resourceViewRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return row.toView(), nil
}

func (r *ResourceReadStore) List(ctx context.Context, f queries.ResourceFilter) ([]*queries.ResourceView, error) {
	q := r.baseQuery()
	if f.Kind != nil {
		q = q.Where(squirrel.Eq{"res.kind": f.Kind.String()})
	}
	if f.OwnerID != nil {
		q = q.Where(squirrel.Eq{"res.owner_id": *f.OwnerID})
	}
	if f.OnlyAvailable {
		q = q.Where(squirrel.Eq{"res.is_available": true})
	}
	if f.Location != "" {
		q = q.Where(squirrel.ILike{"res.location": containsPattern(f.Location)})
	}
	if f.MinUnitPriceCents != nil {
		q = q.Where(squirrel.GtOrEq{"res.unit_price_cents": *f.MinUnitPriceCents})
	}
	if f.MaxUnitPriceCents != nil {
		q = q.Where(squirrel.LtOrEq{"res.unit_price_cents": *f.MaxUnitPriceCents})
	}
	if f.After != nil {
		q = q.Where("(res.created_at, res.id) < (?, ?)", pgconv.TimeToPgtype(f.After.CreatedAt), f.After.ID)
	}
	q = q.OrderBy("res.created_at DESC", "res.id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build resource list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	var views []*queries.ResourceView
	for rows.Next() {
		var row resourceViewRow
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		views = append(views, row.toView())
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resources", err)
	}
	return views, nil
}

// BookedRanges lists pending and approved windows touching [from, to].
func (r *ResourceReadStore) BookedRanges(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]queries.BookedRange, error) {
	query, args, err := db.Psql.
		Select("start_time", "end_time", "status").
		From("reservations").
		Where(squirrel.Eq{
			"resource_id": resourceID,
			"status":      []string{reservation.StatusPending.String(), reservation.StatusApproved.String()},
		}).
		Where(squirrel.LtOrEq{"start_time": pgconv.TimeToPgtype(to)}).
		Where(squirrel.GtOrEq{"end_time": pgconv.TimeToPgtype(from)}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booked range query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked ranges", err)
	}
	defer rows.Close()

	var out []queries.BookedRange
	for rows.Next() {
		var (
			br     queries.BookedRange
			status string
		)
		if err := rows.Scan(&br.Start, &br.End, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked range", err)
		}
		br.Start = br.Start.UTC()
		br.End = br.End.UTC()
		br.Status = reservation.Status(status)
		out = append(out, br)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked ranges", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type resourceViewRow struct {
	converter.ResourceRow
	OwnerName string
}

func (r *resourceViewRow) targets() []any {
	return append(r.ResourceRow.Targets(), &r.OwnerName)
}

func (r *resourceViewRow) toView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:                 r.ID,
		Kind:               resource.Kind(r.Kind),
		OwnerID:            r.OwnerID,
		OwnerName:          r.OwnerName,
		Name:               r.Name,
		Description:        pgconv.StringFromPgtype(r.Description),
		Location:           pgconv.StringFromPgtype(r.Location),
		UnitPriceCents:     r.UnitPriceCents,
		IsAvailable:        r.IsAvailable,
		TotalRentals:       r.TotalRentals,
		TotalEarningsCents: r.TotalEarningsCents,
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
}
