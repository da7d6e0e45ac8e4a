//go:build unit

package reservation_test

import (
	"testing"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  reservation.Status
		errIs error
	}{
		{input: "pending", want: reservation.StatusPending},
		{input: "approved", want: reservation.StatusApproved},
		{input: "accepted", want: reservation.StatusApproved},
		{input: "declined", want: reservation.StatusDeclined},
		{input: "completed", want: reservation.StatusCompleted},
		{input: "cancelled", want: reservation.StatusCancelled},
		{input: "confirmed", errIs: reservation.ErrInvalidStatus},
		{input: "", errIs: reservation.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := reservation.ParseStatus(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "accepted", reservation.StatusApproved.Label(resource.KindMechanic))
	assert.Equal(t, "approved", reservation.StatusApproved.Label(resource.KindVehicle))
	assert.Equal(t, "pending", reservation.StatusPending.Label(resource.KindMechanic))
}

func TestStatusClassification(t *testing.T) {
	assert.True(t, reservation.StatusPending.IsBlocking())
	assert.True(t, reservation.StatusApproved.IsBlocking())
	for _, s := range []reservation.Status{reservation.StatusDeclined, reservation.StatusCancelled, reservation.StatusCompleted} {
		assert.False(t, s.IsBlocking(), s)
		assert.True(t, s.IsTerminal(), s)
	}
	assert.False(t, reservation.StatusApproved.IsTerminal())
}
