package reservation

import (
	"slices"

	"wheelshare/internal/domain/resource"
	"wheelshare/internal/domain/user"
	"wheelshare/internal/pkg/clock"

	"github.com/google/uuid"
)

// requesterRoles lists who may open a reservation on each kind of resource.
var requesterRoles = map[resource.Kind][]user.Role{
	resource.KindVehicle:  {user.RoleRenter},
	resource.KindMechanic: {user.RoleRenter, user.RoleCarOwner},
}

var requesterRoleErrors = map[resource.Kind]error{
	resource.KindVehicle:  ErrVehicleRequesterRole,
	resource.KindMechanic: ErrMechanicRequesterRole,
}

// CanRequest reports whether role may reserve a resource of the given kind.
func CanRequest(kind resource.Kind, role user.Role) bool {
	return slices.Contains(requesterRoles[kind], role)
}

type Factory struct {
	Clock       clock.Clock
	Calculators map[resource.Kind]PriceCalculator
}

func NewFactory(clock clock.Clock, vehicle, mechanic PriceCalculator) *Factory {
	return &Factory{
		Clock: clock,
		Calculators: map[resource.Kind]PriceCalculator{
			resource.KindVehicle:  vehicle,
			resource.KindMechanic: mechanic,
		},
	}
}

// Request carries everything the requester supplies for a new reservation.
type Request struct {
	Requester Actor
	Slot      TimeSlot
	Note      Note
	Service   *ServiceDetails
}

// CreateReservation checks the requester and the resource's calendar and
// prices a new pending reservation. existing must hold the reservations
// already recorded for res.
func (f *Factory) CreateReservation(res *resource.Resource, req Request, existing []*Reservation) (*Reservation, error) {
	kind := res.Kind()
	if !CanRequest(kind, req.Requester.Role) {
		return nil, requesterRoleErrors[kind]
	}
	if res.OwnerID() == req.Requester.ID {
		return nil, ErrOwnResource
	}
	if kind == resource.KindMechanic && req.Service == nil {
		return nil, ErrServiceDetailsRequired
	}
	if !res.IsAvailable() {
		return nil, ErrResourceUnavailable
	}
	if !IsRangeFree(existing, req.Slot) {
		return nil, ErrRangeUnavailable
	}

	calc, ok := f.Calculators[kind]
	if !ok {
		calc = NewQuoteOnAcceptCalculator()
	}
	total, err := calc.CalculatePrice(res, req.Slot)
	if err != nil {
		return nil, err
	}

	var service *ServiceDetails
	if kind == resource.KindMechanic {
		details := *req.Service
		service = &details
	}

	now := f.Clock.Now()
	return &Reservation{
		id:            uuid.New(),
		kind:          kind,
		resourceID:    res.ID(),
		requesterID:   req.Requester.ID,
		providerID:    res.OwnerID(),
		timeSlot:      req.Slot,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		totalAmount:   total,
		note:          req.Note,
		service:       service,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}
