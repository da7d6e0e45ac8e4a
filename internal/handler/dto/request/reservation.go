package request

import (
	"strings"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrScheduleRequired = errs.Define("either startDate and endDate or scheduledDate is required", errs.ErrValidation)

// CreateReservationRequest accepts both reservation shapes. Vehicle bookings send
// startDate and endDate; service requests send scheduledDate with estimatedHours
// plus the service details.
type CreateReservationRequest struct {
	ResourceID uuid.UUID `json:"resourceId" binding:"required"`
	Notes      string    `json:"notes,omitempty" binding:"max=1000"`

	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	ScheduledDate  *time.Time `json:"scheduledDate,omitempty"`
	EstimatedHours *int       `json:"estimatedHours,omitempty" binding:"omitempty,min=1,max=24"`
	VehicleType    string     `json:"vehicleType,omitempty" binding:"max=100"`
	ServiceType    string     `json:"serviceType,omitempty" binding:"max=100"`
	Location       string     `json:"location,omitempty" binding:"max=255"`
	IsEmergency    bool       `json:"isEmergency,omitempty"`
}

func (r CreateReservationRequest) ToInput(expected *resource.Kind, defaultHours int) (commands.CreateReservationInput, error) {
	in := commands.CreateReservationInput{
		ResourceID:   r.ResourceID,
		ExpectedKind: expected,
		Notes:        strings.TrimSpace(r.Notes),
	}

	switch {
	case r.ScheduledDate != nil:
		hours := defaultHours
		if r.EstimatedHours != nil {
			hours = *r.EstimatedHours
		}
		in.Start = *r.ScheduledDate
		in.End = r.ScheduledDate.Add(time.Duration(hours) * time.Hour)
		in.Service = &commands.ServiceInput{
			VehicleType: strings.TrimSpace(r.VehicleType),
			ServiceType: strings.TrimSpace(r.ServiceType),
			Location:    strings.TrimSpace(r.Location),
			IsEmergency: r.IsEmergency,
		}
	case r.StartDate != nil && r.EndDate != nil:
		in.Start = *r.StartDate
		in.End = *r.EndDate
	default:
		return commands.CreateReservationInput{}, ErrScheduleRequired
	}
	return in, nil
}

type UpdateStatusRequest struct {
	Status           string `json:"status" binding:"required,reservation_status"`
	TotalAmountCents *int64 `json:"totalAmountCents,omitempty" binding:"omitempty,min=0"`
}

func (r UpdateStatusRequest) ToInput() commands.UpdateStatusInput {
	return commands.UpdateStatusInput{Status: r.Status, AmountCents: r.TotalAmountCents}
}

type ListReservationsQuery struct {
	Kind   string `form:"kind" binding:"omitempty,resource_kind"`
	Status string `form:"status" binding:"omitempty,reservation_status"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

// ToOptions builds list options; fixed overrides the kind filter for kind-specific routes.
func (q ListReservationsQuery) ToOptions(fixed *resource.Kind) (queries.ListReservationsOptions, error) {
	opts := queries.ListReservationsOptions{Cursor: q.Cursor, Limit: q.Limit}

	switch {
	case fixed != nil:
		opts.Kind = fixed
	case q.Kind != "":
		kind, err := resource.ParseKind(q.Kind)
		if err != nil {
			return queries.ListReservationsOptions{}, err
		}
		opts.Kind = &kind
	}

	if q.Status != "" {
		status, err := reservation.ParseStatus(q.Status)
		if err != nil {
			return queries.ListReservationsOptions{}, err
		}
		opts.Status = &status
	}
	return opts, nil
}
