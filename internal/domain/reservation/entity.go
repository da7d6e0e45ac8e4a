package reservation

import (
	"time"

	"wheelshare/internal/domain/resource"

	"github.com/google/uuid"
)

// Reservation is either a vehicle booking or a mechanic service request.
type Reservation struct {
	id            uuid.UUID
	kind          resource.Kind
	resourceID    uuid.UUID
	requesterID   uuid.UUID
	providerID    uuid.UUID
	timeSlot      TimeSlot
	status        Status
	paymentStatus PaymentStatus
	totalAmount   Money
	note          Note
	service       *ServiceDetails
	createdAt     time.Time
	updatedAt     time.Time
}

func ReconstructReservation(
	id uuid.UUID,
	kind resource.Kind,
	resourceID, requesterID, providerID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	paymentStatus PaymentStatus,
	totalAmount Money,
	note Note,
	service *ServiceDetails,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		kind:          kind,
		resourceID:    resourceID,
		requesterID:   requesterID,
		providerID:    providerID,
		timeSlot:      timeSlot,
		status:        status,
		paymentStatus: paymentStatus,
		totalAmount:   totalAmount,
		note:          note,
		service:       service,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// IsParticipant reports whether the user is the requester or the provider.
func (r *Reservation) IsParticipant(userID uuid.UUID) bool {
	return r.requesterID == userID || r.providerID == userID
}

func (r *Reservation) IsBlocking() bool {
	return r.status.IsBlocking()
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) Kind() resource.Kind          { return r.kind }
func (r *Reservation) ResourceID() uuid.UUID        { return r.resourceID }
func (r *Reservation) RequesterID() uuid.UUID       { return r.requesterID }
func (r *Reservation) ProviderID() uuid.UUID        { return r.providerID }
func (r *Reservation) TimeSlot() TimeSlot           { return r.timeSlot }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) TotalAmount() Money           { return r.totalAmount }
func (r *Reservation) Note() Note                   { return r.note }
func (r *Reservation) Service() *ServiceDetails     { return r.service }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
