package reservation

import (
	"math"
	"strings"
	"time"
)

const (
	MaxNoteLength = 1000
	// MaxSlotLength bounds how far a single reservation may run.
	MaxSlotLength = 366 * 24 * time.Hour
	// MaxAmountCents bounds any stored total.
	MaxAmountCents int64 = 10_000_000_000_000
)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot validates a requested window against the current time.
func NewTimeSlot(start, end, now time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	if start.Before(now) {
		return TimeSlot{}, ErrStartInPast
	}
	if end.Sub(start) > MaxSlotLength {
		return TimeSlot{}, ErrSlotTooLong
	}
	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rebuilds a stored window without validation.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

// StartDay and EndDay are the UTC calendar days the window touches.
func (ts TimeSlot) StartDay() time.Time {
	return truncateDay(ts.start)
}

func (ts TimeSlot) EndDay() time.Time {
	return truncateDay(ts.end)
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	if cents > MaxAmountCents {
		return Money{}, ErrAmountTooLarge
	}
	return Money{cents: cents}, nil
}

// MoneyFromCents wraps an amount that is already known to be valid.
func MoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Multiply(n int64) (Money, error) {
	if n < 0 {
		return Money{}, ErrNegativeAmount
	}
	cents, ok := mulCents(m.cents, n)
	if !ok {
		return Money{}, ErrAmountTooLarge
	}
	return NewMoney(cents)
}

// mulCents multiplies two non-negative amounts, reporting false on int64 overflow.
func mulCents(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func ReconstructNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// ServiceDetails describes the job for a mechanic service request.
type ServiceDetails struct {
	vehicleType string
	serviceType string
	location    string
	isEmergency bool
}

func NewServiceDetails(vehicleType, serviceType, location string, isEmergency bool) (ServiceDetails, error) {
	vehicleType = strings.TrimSpace(vehicleType)
	serviceType = strings.TrimSpace(serviceType)
	if vehicleType == "" || serviceType == "" {
		return ServiceDetails{}, ErrServiceDetailsRequired
	}
	return ServiceDetails{
		vehicleType: vehicleType,
		serviceType: serviceType,
		location:    strings.TrimSpace(location),
		isEmergency: isEmergency,
	}, nil
}

func ReconstructServiceDetails(vehicleType, serviceType, location string, isEmergency bool) ServiceDetails {
	return ServiceDetails{
		vehicleType: vehicleType,
		serviceType: serviceType,
		location:    location,
		isEmergency: isEmergency,
	}
}

func (s ServiceDetails) VehicleType() string { return s.vehicleType }
func (s ServiceDetails) ServiceType() string { return s.serviceType }
func (s ServiceDetails) Location() string    { return s.location }
func (s ServiceDetails) IsEmergency() bool   { return s.isEmergency }
