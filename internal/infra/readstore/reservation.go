package readstore

import (
	"context"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"
	"wheelshare/internal/infra/repository/converter"
	"wheelshare/internal/pkg/pgconv"
	"wheelshare/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) baseQuery() squirrel.SelectBuilder {
	cols := append(converter.ReservationColumns("r"), "res.name", "rq.name", "pv.name")
	return db.Psql.
		Select(cols...).
		From("reservations r").
		Join("resources res ON res.id = r.resource_id").
		Join("users rq ON rq.id = r.requester_id").
		Join("users pv ON pv.id = r.provider_id")
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	query, args, err := r.baseQuery().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation query", err)
	}

	var row reservationViewRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.targets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return row.toView()
}

// List pages with a (created_at, id) keyset, newest first.
func (r *ReservationReadStore) List(ctx context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	q := r.baseQuery()
	if f.ParticipantID != nil {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"r.requester_id": *f.ParticipantID},
			squirrel.Eq{"r.provider_id": *f.ParticipantID},
		})
	}
	if f.Kind != nil {
		q = q.Where(squirrel.Eq{"r.kind": f.Kind.String()})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"r.status": f.Status.String()})
	}
	if f.After != nil {
		q = q.Where("(r.created_at, r.id) < (?, ?)", pgconv.TimeToPgtype(f.After.CreatedAt), f.After.ID)
	}
	q = q.OrderBy("r.created_at DESC", "r.id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		var row reservationViewRow
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		v, err := row.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return views, nil
}

type reservationViewRow struct {
	converter.ReservationRow
	ResourceName  string
	RequesterName string
	ProviderName  string
}

func (r *reservationViewRow) targets() []any {
	return append(r.ReservationRow.Targets(), &r.ResourceName, &r.RequesterName, &r.ProviderName)
}

func (r *reservationViewRow) toView() (*queries.ReservationView, error) {
	res, err := converter.ReservationToDomain(r.ReservationRow)
	if err != nil {
		return nil, err
	}
	return reservationToView(res, r.ResourceName, r.RequesterName, r.ProviderName), nil
}

func reservationToView(res *reservation.Reservation, resourceName, requesterName, providerName string) *queries.ReservationView {
	v := &queries.ReservationView{
		ID:               res.ID(),
		Kind:             res.Kind(),
		ResourceID:       res.ResourceID(),
		ResourceName:     resourceName,
		RequesterID:      res.RequesterID(),
		RequesterName:    requesterName,
		ProviderID:       res.ProviderID(),
		ProviderName:     providerName,
		StartTime:        res.TimeSlot().Start(),
		EndTime:          res.TimeSlot().End(),
		Status:           res.Status(),
		PaymentStatus:    res.PaymentStatus(),
		TotalAmountCents: res.TotalAmount().Cents(),
		Notes:            res.Note().String(),
		CreatedAt:        res.CreatedAt(),
		UpdatedAt:        res.UpdatedAt(),
	}
	if svc := res.Service(); svc != nil {
		v.Service = &queries.ServiceView{
			VehicleType: svc.VehicleType(),
			ServiceType: svc.ServiceType(),
			Location:    svc.Location(),
			IsEmergency: svc.IsEmergency(),
		}
	}
	return v
}
