package shared

import (
	"context"
	"encoding/json"
	"time"

	"wheelshare/internal/domain/reservation"
	"wheelshare/internal/domain/resource"

	"github.com/google/uuid"
)

const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
)

// OutboxEvent is written inside the business transaction and relayed later.
type OutboxEvent struct {
	ID            uuid.UUID
	EventType     string
	AggregateID   uuid.UUID
	CorrelationID string
	Payload       []byte
	OccurredAt    time.Time
}

// ReservationEventPayload is the body published for reservation events.
type ReservationEventPayload struct {
	ReservationID    uuid.UUID `json:"reservationId"`
	Kind             string    `json:"kind"`
	ResourceID       uuid.UUID `json:"resourceId"`
	RequesterID      uuid.UUID `json:"requesterId"`
	ProviderID       uuid.UUID `json:"providerId"`
	PreviousStatus   string    `json:"previousStatus,omitempty"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	ActorID          uuid.UUID `json:"actorId"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
}

// NewReservationEvent snapshots r into an outbox event.
func NewReservationEvent(
	eventType string,
	r *reservation.Reservation,
	previous reservation.Status,
	actorID uuid.UUID,
	correlationID string,
	at time.Time,
) (OutboxEvent, error) {
	payload := ReservationEventPayload{
		ReservationID:    r.ID(),
		Kind:             r.Kind().String(),
		ResourceID:       r.ResourceID(),
		RequesterID:      r.RequesterID(),
		ProviderID:       r.ProviderID(),
		PreviousStatus:   previousLabel(previous, r.Kind()),
		Status:           r.Status().Label(r.Kind()),
		TotalAmountCents: r.TotalAmount().Cents(),
		ActorID:          actorID,
		StartTime:        r.TimeSlot().Start(),
		EndTime:          r.TimeSlot().End(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, err
	}
	return OutboxEvent{
		ID:            uuid.New(),
		EventType:     eventType,
		AggregateID:   r.ID(),
		CorrelationID: correlationID,
		Payload:       body,
		OccurredAt:    at,
	}, nil
}

func previousLabel(previous reservation.Status, kind resource.Kind) string {
	if previous == "" {
		return ""
	}
	return previous.Label(kind)
}

type correlationKey struct{}

// WithCorrelationID stores the request id that outbox events should carry.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
