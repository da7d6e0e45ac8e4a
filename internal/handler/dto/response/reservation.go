package response

import (
	"time"

	"wheelshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ServiceResponse struct {
	VehicleType string `json:"vehicleType"`
	ServiceType string `json:"serviceType"`
	Location    string `json:"location,omitempty"`
	IsEmergency bool   `json:"isEmergency"`
}

type ReservationResponse struct {
	ID               uuid.UUID        `json:"id"`
	Kind             string           `json:"kind"`
	ResourceID       uuid.UUID        `json:"resourceId"`
	ResourceName     string           `json:"resourceName"`
	RequesterID      uuid.UUID        `json:"requesterId"`
	RequesterName    string           `json:"requesterName"`
	ProviderID       uuid.UUID        `json:"providerId"`
	ProviderName     string           `json:"providerName"`
	StartTime        time.Time        `json:"startTime"`
	EndTime          time.Time        `json:"endTime"`
	Status           string           `json:"status"`
	PaymentStatus    string           `json:"paymentStatus"`
	TotalAmountCents int64            `json:"totalAmountCents"`
	Notes            string           `json:"notes,omitempty"`
	Service          *ServiceResponse `json:"service,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type ReservationPageResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	var res ReservationResponse
	_ = copier.Copy(&res, v)
	// approved service requests read as "accepted"
	res.Status = v.StatusLabel()
	res.Service = nil
	if v.Service != nil {
		res.Service = &ServiceResponse{
			VehicleType: v.Service.VehicleType,
			ServiceType: v.Service.ServiceType,
			Location:    v.Service.Location,
			IsEmergency: v.Service.IsEmergency,
		}
	}
	return &res
}

func FromReservationPage(p *queries.ReservationPage) *ReservationPageResponse {
	items := make([]*ReservationResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromReservationView(v)
	}
	return &ReservationPageResponse{Items: items, NextCursor: p.NextCursor}
}
