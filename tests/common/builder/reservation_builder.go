//go:build unit || e2e

package builder

import (
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	reqdto "wheelshare/internal/handler/dto/request"
	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	Kind          resource.Kind
	ResourceID    uuid.UUID
	RequesterID   uuid.UUID
	ProviderID    uuid.UUID
	Start         time.Time
	End           time.Time
	Status        reservation.Status
	PaymentStatus reservation.PaymentStatus
	AmountCents   int64
	Notes         string
	CreatedAt     time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:            uuid.New(),
		Kind:          resource.KindVehicle,
		ResourceID:    uuid.New(),
		RequesterID:   uuid.New(),
		ProviderID:    uuid.New(),
		Start:         April(1),
		End:           April(4),
		Status:        reservation.StatusPending,
		PaymentStatus: reservation.PaymentPending,
		AmountCents:   19500,
		Notes:         "Airport pickup",
		CreatedAt:     Now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	note, _ := reservation.NewNote(b.Notes)
	var service *reservation.ServiceDetails
	if b.Kind == resource.KindMechanic {
		details := reservation.ReconstructServiceDetails("sedan", "brake inspection", "Main St garage", false)
		service = &details
	}
	return reservation.ReconstructReservation(
		b.ID, b.Kind, b.ResourceID, b.RequesterID, b.ProviderID,
		reservation.ReconstructTimeSlot(b.Start, b.End),
		b.Status, b.PaymentStatus,
		reservation.MoneyFromCents(b.AmountCents),
		note, service,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithWindow(start, end time.Time) *ReservationBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *ReservationBuilder) WithKind(kind resource.Kind) *ReservationBuilder {
	b.Kind = kind
	return b
}

func (b *ReservationBuilder) WithParties(requesterID, providerID uuid.UUID) *ReservationBuilder {
	b.RequesterID = requesterID
	b.ProviderID = providerID
	return b
}

func (b *ReservationBuilder) ForResource(id uuid.UUID) *ReservationBuilder {
	b.ResourceID = id
	return b
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	v := &queries.ReservationView{
		ID:               b.ID,
		Kind:             b.Kind,
		ResourceID:       b.ResourceID,
		ResourceName:     "Toyota Prius 2021",
		RequesterID:      b.RequesterID,
		RequesterName:    "Ravi",
		ProviderID:       b.ProviderID,
		ProviderName:     "Olga",
		StartTime:        b.Start,
		EndTime:          b.End,
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		TotalAmountCents: b.AmountCents,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
	if b.Kind == resource.KindMechanic {
		v.ResourceName = "Brake and engine diagnostics"
		v.Service = &queries.ServiceView{VehicleType: "sedan", ServiceType: "brake inspection", Location: "Main St garage"}
	}
	return v
}

// BuildDTO returns the create request matching the builder's kind.
func (b *ReservationBuilder) BuildDTO() reqdto.CreateReservationRequest {
	req := reqdto.CreateReservationRequest{ResourceID: b.ResourceID, Notes: b.Notes}
	if b.Kind == resource.KindMechanic {
		start := b.Start
		hours := int(b.End.Sub(b.Start).Hours())
		req.ScheduledDate = &start
		req.EstimatedHours = &hours
		req.VehicleType = "sedan"
		req.ServiceType = "brake inspection"
		req.Location = "Main St garage"
		return req
	}
	start, end := b.Start, b.End
	req.StartDate = &start
	req.EndDate = &end
	return req
}
