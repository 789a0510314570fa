package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// FullDayParams is one full-day resolution pass.
// Count maps are keyed by DateKey of the schedule-local date.
type FullDayParams struct {
	StartDate time.Time
	EndDate   time.Time

	EventType *domain.EventType
	Schedule  *domain.AvailabilitySchedule

	BookingCountsByDate  map[string]int
	ReservedCountsByDate map[string]int

	Now time.Time

	DisplayTimezone string
}

// GenerateFullDay returns one pseudo-slot per open date of [StartDate, EndDate].
// Only date-level counts decide availability: no buffers, no calendar busy time.
// Full dates are returned with IsAvailable=false so callers can render them.
func (g *Generator) GenerateFullDay(p FullDayParams) ([]domain.Slot, error) {
	if err := validateSlotParams(p.EventType, p.Schedule); err != nil {
		return nil, err
	}
	if !p.EventType.IsFullDay() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, p.EventType.Kind)
	}

	startDate, endDate := civilDate(p.StartDate), civilDate(p.EndDate)
	if endDate.Before(startDate) {
		return nil, ErrInvalidRange
	}

	scheduleLoc, err := g.converter.Location(p.Schedule.Timezone)
	if err != nil {
		return nil, err
	}
	displayTZ := p.Schedule.DisplayTimezone(p.DisplayTimezone)
	if _, err := g.converter.Location(displayTZ); err != nil {
		return nil, err
	}

	// Bounds are the schedule-local dates of now+notice and now+future
	minDate := civilDate(p.Now.Add(p.Schedule.MinBookingNotice()).In(scheduleLoc))
	maxDate := civilDate(p.Now.Add(p.Schedule.FutureWindow()).In(scheduleLoc))
	bounded := p.Schedule.HasFutureLimit()

	capacity, limited := p.EventType.Capacity()
	resolver := NewResolver(p.Schedule)
	slots := make([]domain.Slot, 0)

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		if date.Before(minDate) || (bounded && date.After(maxDate)) {
			continue
		}
		if !resolver.IsAvailable(date) {
			continue
		}

		key := dateKey(date)
		used := p.BookingCountsByDate[key] + p.ReservedCountsByDate[key]

		start, err := g.converter.ToUTC(date, p.Schedule.Timezone)
		if err != nil {
			return nil, err
		}
		end, err := g.converter.ToUTC(date.AddDate(0, 0, 1), p.Schedule.Timezone)
		if err != nil {
			return nil, err
		}

		slot, err := g.slot(start, end, displayTZ)
		if err != nil {
			return nil, err
		}
		slot.IsFullDay = true
		slot.IsAvailable = !limited || used < capacity
		slot.CurrentBookings = p.BookingCountsByDate[key]
		if limited {
			c := capacity
			slot.MaxCapacity = &c
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// CountBookingsByDate groups active bookings by the schedule-local date of their start
func CountBookingsByDate(bookings []*domain.Booking, loc *time.Location) map[string]int {
	counts := make(map[string]int)
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		counts[DateKey(b.StartTime.In(loc))]++
	}
	return counts
}

// ReservedCountsByDate sums the spots of holds active at now by the schedule-local date of their start
func ReservedCountsByDate(reservations []domain.SlotReservation, loc *time.Location, now time.Time) map[string]int {
	counts := make(map[string]int)
	for _, r := range reservations {
		if !r.IsActive(now) {
			continue
		}
		spots := r.SpotsReserved
		if spots <= 0 {
			spots = 1
		}
		counts[DateKey(r.Start.In(loc))] += spots
	}
	return counts
}
