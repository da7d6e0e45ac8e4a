package converter

import (
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var reservationColumns = []string{
	"id", "kind", "resource_id", "requester_id", "provider_id",
	"start_time", "end_time", "status", "payment_status", "total_amount_cents", "notes",
	"service_vehicle_type", "service_type", "service_location", "service_is_emergency",
	"created_at", "updated_at",
}

// ReservationColumns returns the reservation columns in ReservationRow.Targets order,
// qualified with alias when one is given.
func ReservationColumns(alias string) []string {
	return qualify(alias, reservationColumns)
}

type ReservationRow struct {
	ID                 uuid.UUID
	Kind               string
	ResourceID         uuid.UUID
	RequesterID        uuid.UUID
	ProviderID         uuid.UUID
	StartTime          time.Time
	EndTime            time.Time
	Status             string
	PaymentStatus      string
	TotalAmountCents   int64
	Notes              pgtype.Text
	ServiceVehicleType pgtype.Text
	ServiceType        pgtype.Text
	ServiceLocation    pgtype.Text
	ServiceIsEmergency pgtype.Bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r *ReservationRow) Targets() []any {
	return []any{
		&r.ID, &r.Kind, &r.ResourceID, &r.RequesterID, &r.ProviderID,
		&r.StartTime, &r.EndTime, &r.Status, &r.PaymentStatus, &r.TotalAmountCents, &r.Notes,
		&r.ServiceVehicleType, &r.ServiceType, &r.ServiceLocation, &r.ServiceIsEmergency,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func ReservationToDomain(row ReservationRow) (*reservation.Reservation, error) {
	kind, err := resource.ParseKind(row.Kind)
	if err != nil {
		return nil, errs.Wrap(err, "stored reservation kind")
	}
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored reservation status")
	}

	var service *reservation.ServiceDetails
	if row.ServiceVehicleType.Valid {
		s := reservation.ReconstructServiceDetails(
			row.ServiceVehicleType.String,
			pgconv.StringFromPgtype(row.ServiceType),
			pgconv.StringFromPgtype(row.ServiceLocation),
			row.ServiceIsEmergency.Valid && row.ServiceIsEmergency.Bool,
		)
		service = &s
	}

	return reservation.ReconstructReservation(
		row.ID,
		kind,
		row.ResourceID, row.RequesterID, row.ProviderID,
		reservation.ReconstructTimeSlot(row.StartTime.UTC(), row.EndTime.UTC()),
		status,
		reservation.PaymentStatus(row.PaymentStatus),
		reservation.MoneyFromCents(row.TotalAmountCents),
		reservation.ReconstructNote(pgconv.StringFromPgtype(row.Notes)),
		service,
		row.CreatedAt.UTC(), row.UpdatedAt.UTC(),
	), nil
}

// ReservationToInsert maps a new reservation to column values, including the
// UTC day columns the vehicle exclusion constraint works on.
func ReservationToInsert(r *reservation.Reservation) map[string]any {
	slot := r.TimeSlot()
	values := map[string]any{
		"id":                 r.ID(),
		"kind":               r.Kind().String(),
		"resource_id":        r.ResourceID(),
		"requester_id":       r.RequesterID(),
		"provider_id":        r.ProviderID(),
		"start_time":         pgconv.TimeToPgtype(slot.Start()),
		"end_time":           pgconv.TimeToPgtype(slot.End()),
		"start_day":          pgconv.DateToPgtype(slot.Start()),
		"end_day":            pgconv.DateToPgtype(slot.End()),
		"status":             r.Status().String(),
		"payment_status":     r.PaymentStatus().String(),
		"total_amount_cents": r.TotalAmount().Cents(),
		"notes":              pgconv.StringToPgtype(r.Note().String()),
		"created_at":         pgconv.TimeToPgtype(r.CreatedAt()),
		"updated_at":         pgconv.TimeToPgtype(r.UpdatedAt()),
	}
	if svc := r.Service(); svc != nil {
		values["service_vehicle_type"] = svc.VehicleType()
		values["service_type"] = svc.ServiceType()
		values["service_location"] = pgconv.StringToPgtype(svc.Location())
		values["service_is_emergency"] = svc.IsEmergency()
	}
	return values
}

func qualify(alias string, cols []string) []string {
	if alias == "" {
		return cols
	}
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
