package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ConflictIndex is a read-only view over the blocking intervals of one resolution pass.
// Every list is sorted ascending by start, which lets a scan stop at the first entry
// starting at or after the tested window's end.
//
// The scan is linear with an early exit. Per-request lists are small (one date range of
// one owner); for large datasets an interval tree or a binary search on start would
// give sub-linear lookups.
type ConflictIndex struct {
	bookings     []domain.Interval
	busy         []domain.Interval
	reservations []domain.Interval

	bufferBefore time.Duration
	bufferAfter  time.Duration

	capacity       int
	hasCapacity    bool
	singleCapacity bool
}

// NewConflictIndex builds the index for eventType from snapshots of the three sources.
// Cancelled bookings and inactive reservations (at now) are dropped. Inputs are not modified.
func NewConflictIndex(
	eventType *domain.EventType,
	bookings []*domain.Booking,
	busy []domain.CalendarBusySlot,
	reservations []domain.SlotReservation,
	now time.Time,
) *ConflictIndex {
	capacity, hasCapacity := eventType.Capacity()

	idx := &ConflictIndex{
		bookings:       make([]domain.Interval, 0, len(bookings)),
		busy:           make([]domain.Interval, 0, len(busy)),
		bufferBefore:   eventType.BufferBefore(),
		bufferAfter:    eventType.BufferAfter(),
		capacity:       capacity,
		hasCapacity:    hasCapacity,
		singleCapacity: hasCapacity && capacity == 1,
	}

	for _, b := range bookings {
		if b == nil || !b.IsActive() || !b.EndTime.After(b.StartTime) {
			continue
		}
		idx.bookings = append(idx.bookings, b.Interval())
	}

	for _, s := range busy {
		if !s.End.After(s.Start) {
			continue
		}
		idx.busy = append(idx.busy, s.Interval())
	}

	// Holds only apply against single-capacity event types
	if idx.singleCapacity {
		idx.reservations = make([]domain.Interval, 0, len(reservations))
		for _, r := range reservations {
			if !r.IsActive(now) || !r.End.After(r.Start) {
				continue
			}
			idx.reservations = append(idx.reservations, r.Interval())
		}
	}

	sortIntervals(idx.bookings)
	sortIntervals(idx.busy)
	sortIntervals(idx.reservations)

	return idx
}

// HasConflict tests [slotStart, slotEnd) expanded by the event type's buffers.
// Calendar busy time always blocks the buffered window.
//
// Single-capacity kinds are blocked by any booking or hold. Those are meetings of their
// own and carry the same buffers, so their spans are padded too: a booking [10:00,10:30)
// with a 15m after-buffer keeps 10:30-10:45 free. The gap kept between two one-on-one
// meetings is therefore before+after on either side.
//
// Multi-capacity kinds count bookings against the buffered window only and are blocked
// once the count reaches capacity.
func (c *ConflictIndex) HasConflict(slotStart, slotEnd time.Time) bool {
	from, to := c.buffered(slotStart, slotEnd)
	if overlapsAny(c.busy, from, to) {
		return true
	}

	if c.singleCapacity {
		padFrom, padTo := c.padded(slotStart, slotEnd)
		if overlapsAny(c.bookings, padFrom, padTo) {
			return true
		}
		return overlapsAny(c.reservations, padFrom, padTo)
	}

	if !c.hasCapacity {
		return false
	}
	return countOverlaps(c.bookings, from, to) >= c.capacity
}

// CountOverlapping returns how many active bookings overlap the buffered slot window
func (c *ConflictIndex) CountOverlapping(slotStart, slotEnd time.Time) int {
	from, to := c.buffered(slotStart, slotEnd)
	return countOverlaps(c.bookings, from, to)
}

// OverlapsBooking tests [start, end) against active bookings without buffers
func (c *ConflictIndex) OverlapsBooking(start, end time.Time) bool {
	return overlapsAny(c.bookings, start, end)
}

// CountBookings counts active bookings overlapping [start, end) without buffers
func (c *ConflictIndex) CountBookings(start, end time.Time) int {
	return countOverlaps(c.bookings, start, end)
}

// OverlapsReservation tests [start, end) against active holds without buffers.
// Always false for multi-capacity kinds, whose holds are not indexed.
func (c *ConflictIndex) OverlapsReservation(start, end time.Time) bool {
	return overlapsAny(c.reservations, start, end)
}

// OverlapsCalendar tests [start, end) against external calendar busy time without buffers
func (c *ConflictIndex) OverlapsCalendar(start, end time.Time) bool {
	return overlapsAny(c.busy, start, end)
}

func (c *ConflictIndex) buffered(start, end time.Time) (time.Time, time.Time) {
	return start.Add(-c.bufferBefore), end.Add(c.bufferAfter)
}

// padded widens the buffered window by the buffers of the entry being tested against.
// Overlap of [s-before, e+after) with the buffered window equals overlap of [s, e) with this one.
func (c *ConflictIndex) padded(start, end time.Time) (time.Time, time.Time) {
	pad := c.bufferBefore + c.bufferAfter
	return start.Add(-pad), end.Add(pad)
}

// overlapsAny reports the first entry of a start-sorted list overlapping [from, to)
func overlapsAny(list []domain.Interval, from, to time.Time) bool {
	for _, iv := range list {
		if !iv.End.After(from) {
			continue // too early
		}
		if !iv.Start.Before(to) {
			break // sorted: nothing later can overlap
		}
		return true
	}
	return false
}

// countOverlaps sums the entries of a start-sorted list overlapping [from, to)
func countOverlaps(list []domain.Interval, from, to time.Time) int {
	count := 0
	for _, iv := range list {
		if !iv.End.After(from) {
			continue
		}
		if !iv.Start.Before(to) {
			break
		}
		count++
	}
	return count
}

func sortIntervals(list []domain.Interval) {
	sort.SliceStable(list, func(i, j int) bool {
		return lessInterval(list[i], list[j])
	})
}

func lessInterval(a, b domain.Interval) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.End.Before(b.End)
}
