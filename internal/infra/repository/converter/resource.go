package converter

import (
	"time"

	"wheelshare/internal/domain/resource"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var resourceColumns = []string{
	"id", "kind", "owner_id", "name", "description", "location", "unit_price_cents",
	"is_available", "total_rentals", "total_earnings_cents", "created_at", "updated_at",
}

func ResourceColumns(alias string) []string {
	return qualify(alias, resourceColumns)
}

type ResourceRow struct {
	ID                 uuid.UUID
	Kind               string
	OwnerID            uuid.UUID
	Name               string
	Description        pgtype.Text
	Location           pgtype.Text
	UnitPriceCents     int64
	IsAvailable        bool
	TotalRentals       int64
	TotalEarningsCents int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r *ResourceRow) Targets() []any {
	return []any{
		&r.ID, &r.Kind, &r.OwnerID, &r.Name, &r.Description, &r.Location, &r.UnitPriceCents,
		&r.IsAvailable, &r.TotalRentals, &r.TotalEarningsCents, &r.CreatedAt, &r.UpdatedAt,
	}
}

func ResourceToDomain(row ResourceRow) (*resource.Resource, error) {
	kind, err := resource.ParseKind(row.Kind)
	if err != nil {
		return nil, errs.Wrap(err, "stored resource kind")
	}
	return resource.ReconstructResource(
		row.ID,
		kind,
		row.OwnerID,
		row.Name,
		pgconv.StringFromPgtype(row.Description),
		pgconv.StringFromPgtype(row.Location),
		row.UnitPriceCents,
		row.IsAvailable,
		row.TotalRentals,
		row.TotalEarningsCents,
		row.CreatedAt.UTC(), row.UpdatedAt.UTC(),
	), nil
}

// ResourceToInsert leaves the counters to their column defaults.
func ResourceToInsert(r *resource.Resource) map[string]any {
	return map[string]any{
		"id":               r.ID(),
		"kind":             r.Kind().String(),
		"owner_id":         r.OwnerID(),
		"name":             r.Name(),
		"description":      pgconv.StringToPgtype(r.Description()),
		"location":         pgconv.StringToPgtype(r.Location()),
		"unit_price_cents": r.UnitPriceCents(),
		"is_available":     r.IsAvailable(),
		"created_at":       pgconv.TimeToPgtype(r.CreatedAt()),
		"updated_at":       pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

// ResourceToUpdate covers the owner-editable columns only.
func ResourceToUpdate(r *resource.Resource) map[string]any {
	return map[string]any{
		"name":             r.Name(),
		"description":      pgconv.StringToPgtype(r.Description()),
		"location":         pgconv.StringToPgtype(r.Location()),
		"unit_price_cents": r.UnitPriceCents(),
		"is_available":     r.IsAvailable(),
		"updated_at":       pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}
