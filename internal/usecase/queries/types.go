package queries

import (
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"

	"github.com/google/uuid"
)

// ReservationView is the read model of a reservation with display names joined in.
type ReservationView struct {
	ID               uuid.UUID
	Kind             resource.Kind
	ResourceID       uuid.UUID
	ResourceName     string
	RequesterID      uuid.UUID
	RequesterName    string
	ProviderID       uuid.UUID
	ProviderName     string
	StartTime        time.Time
	EndTime          time.Time
	Status           reservation.Status
	PaymentStatus    reservation.PaymentStatus
	TotalAmountCents int64
	Notes            string
	Service          *ServiceView
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StatusLabel is the client-facing status name.
func (v *ReservationView) StatusLabel() string {
	return v.Status.Label(v.Kind)
}

type ServiceView struct {
	VehicleType string
	ServiceType string
	Location    string
	IsEmergency bool
}

type ReservationPage struct {
	Items      []*ReservationView
	NextCursor string
}

type ResourceView struct {
	ID                 uuid.UUID
	Kind               resource.Kind
	OwnerID            uuid.UUID
	OwnerName          string
	Name               string
	Description        string
	Location           string
	UnitPriceCents     int64
	IsAvailable        bool
	TotalRentals       int64
	TotalEarningsCents int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ResourcePage struct {
	Items      []*ResourceView
	NextCursor string
}

// BookedRange is a window held by a pending or approved reservation.
type BookedRange struct {
	Start  time.Time
	End    time.Time
	Status reservation.Status
}

type UserView struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         user.Role
	PasswordHash string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}
