package domain

import "time"

// Interval is a half-open [Start, End) span of UTC instants
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [i.Start, i.End) and [start, end) share any instant.
// Touching intervals do not overlap.
func (i Interval) Overlaps(start, end time.Time) bool {
	return i.Start.Before(end) && start.Before(i.End)
}

// Duration returns the interval length
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// CalendarBusySlot is busy time imported from an external calendar.
// Always blocking, never counted against capacity.
type CalendarBusySlot struct {
	Start  time.Time
	End    time.Time
	Source string // calendar provider, informational
}

// Interval returns the busy span
func (c CalendarBusySlot) Interval() Interval {
	return Interval{Start: c.Start, End: c.End}
}

// ReservationStatus lifecycle of a temporary slot hold
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationReleased  ReservationStatus = "released"
)

// SlotReservation is a temporary, expiring claim on a slot prior to a finalized booking
type SlotReservation struct {
	ID            string
	EventTypeID   int64
	UserID        int64
	Start         time.Time
	End           time.Time
	SpotsReserved int
	Status        ReservationStatus
	ExpiresAt     time.Time
}

// IsActive returns true for a pending hold that has not expired at now
func (r SlotReservation) IsActive(now time.Time) bool {
	return r.Status == ReservationPending && r.ExpiresAt.After(now)
}

// Interval returns the held span
func (r SlotReservation) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}
