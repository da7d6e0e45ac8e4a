//go:build unit

package response_test

import (
	"testing"
	"time"

	resdto "wheelshare/internal/handler/dto/response"
	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"
	"wheelshare/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromReservationView(t *testing.T) {
	start := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	base := queries.ReservationView{
		ID:               uuid.New(),
		ResourceID:       uuid.New(),
		ResourceName:     "Toyota Prius 2021",
		RequesterID:      uuid.New(),
		RequesterName:    "Ravi",
		ProviderID:       uuid.New(),
		ProviderName:     "Olga",
		StartTime:        start,
		EndTime:          start.Add(2 * time.Hour),
		PaymentStatus:    reservation.PaymentPending,
		TotalAmountCents: 19500,
		CreatedAt:        start.Add(-time.Hour),
		UpdatedAt:        start.Add(-time.Hour),
	}

	tests := []struct {
		name       string
		kind       resource.Kind
		status     reservation.Status
		service    *queries.ServiceView
		wantStatus string
	}{
		{name: "承認済み車両予約はapproved", kind: resource.KindVehicle, status: reservation.StatusApproved, wantStatus: "approved"},
		{name: "承認済み整備依頼はaccepted", kind: resource.KindMechanic, status: reservation.StatusApproved,
			service: &queries.ServiceView{VehicleType: "sedan", ServiceType: "oil change", IsEmergency: true}, wantStatus: "accepted"},
		{name: "保留中の整備依頼はpending", kind: resource.KindMechanic, status: reservation.StatusPending,
			service: &queries.ServiceView{VehicleType: "sedan", ServiceType: "brakes"}, wantStatus: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base
			v.Kind = tt.kind
			v.Status = tt.status
			v.Service = tt.service

			got := resdto.FromReservationView(&v)

			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.kind.String(), got.Kind)
			assert.Equal(t, "pending", got.PaymentStatus)
			assert.Equal(t, int64(19500), got.TotalAmountCents)
			assert.Equal(t, "Olga", got.ProviderName)
			if tt.service == nil {
				assert.Nil(t, got.Service)
				return
			}
			want := &resdto.ServiceResponse{
				VehicleType: tt.service.VehicleType,
				ServiceType: tt.service.ServiceType,
				IsEmergency: tt.service.IsEmergency,
			}
			if diff := cmp.Diff(want, got.Service); diff != "" {
				t.Errorf("service mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromBookedRanges(t *testing.T) {
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	ranges := []queries.BookedRange{
		{Start: day, End: day.AddDate(0, 0, 2), Status: reservation.StatusApproved},
		{Start: day.AddDate(0, 0, 5), End: day.AddDate(0, 0, 6), Status: reservation.StatusPending},
	}

	got := resdto.FromBookedRanges(ranges)

	want := []resdto.BookedRangeResponse{
		{Start: day, End: day.AddDate(0, 0, 2), Status: "approved"},
		{Start: day.AddDate(0, 0, 5), End: day.AddDate(0, 0, 6), Status: "pending"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranges mismatch (-want +got):\n%s", diff)
	}
}
