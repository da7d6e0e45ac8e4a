package reservation

import (
	"time"

	"wheelshare/internal/domain/resource"
)

type PriceCalculator interface {
	CalculatePrice(res *resource.Resource, slot TimeSlot) (Money, error)
}

// DailyRateCalculator charges the unit price for every started 24 hour period.
type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (DailyRateCalculator) CalculatePrice(res *resource.Resource, slot TimeSlot) (Money, error) {
	return unitPrice(res).Multiply(startedUnits(slot, 24*time.Hour))
}

// HourlyRateCalculator charges the unit price for every started hour.
type HourlyRateCalculator struct{}

func NewHourlyRateCalculator() *HourlyRateCalculator {
	return &HourlyRateCalculator{}
}

func (HourlyRateCalculator) CalculatePrice(res *resource.Resource, slot TimeSlot) (Money, error) {
	return unitPrice(res).Multiply(startedUnits(slot, time.Hour))
}

// QuoteOnAcceptCalculator leaves the amount open until the provider quotes it.
type QuoteOnAcceptCalculator struct{}

func NewQuoteOnAcceptCalculator() *QuoteOnAcceptCalculator {
	return &QuoteOnAcceptCalculator{}
}

func (QuoteOnAcceptCalculator) CalculatePrice(*resource.Resource, TimeSlot) (Money, error) {
	return Money{}, nil
}

func unitPrice(res *resource.Resource) Money {
	return MoneyFromCents(res.UnitPriceCents())
}

// startedUnits is ceil((end - start) / unit) for whole-second units. It works
// on Unix seconds so windows longer than time.Duration can hold are not clamped.
func startedUnits(slot TimeSlot, unit time.Duration) int64 {
	secs := slot.end.Unix() - slot.start.Unix()
	nanos := int64(slot.end.Nanosecond() - slot.start.Nanosecond())
	if nanos < 0 {
		secs--
		nanos += int64(time.Second)
	}
	if secs < 0 || (secs == 0 && nanos == 0) {
		return 0
	}

	unitSecs := int64(unit / time.Second)
	n := secs / unitSecs
	if secs%unitSecs != 0 || nanos != 0 {
		n++
	}
	return n
}
