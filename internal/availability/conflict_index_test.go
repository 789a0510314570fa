package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestConflictIndex_Buffers(t *testing.T) {
	event := oneOnOne(30)
	event.BufferAfterMinutes = 15

	bookings := []*domain.Booking{booking(1, at(monday, 10, 0), 30, domain.StatusConfirmed)}
	index := NewConflictIndex(event, bookings, nil, nil, monday)

	tests := []struct {
		name     string
		start    time.Time
		conflict bool
	}{
		{name: "right after the booking", start: at(monday, 10, 30), conflict: true},
		{name: "after the booking's buffer", start: at(monday, 10, 45), conflict: false},
		{name: "own buffer reaches the booking", start: at(monday, 9, 30), conflict: true},
		{name: "own buffer ends at the booking", start: at(monday, 9, 15), conflict: false},
		{name: "same interval", start: at(monday, 10, 0), conflict: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, index.HasConflict(tt.start, tt.start.Add(30*time.Minute)))
		})
	}
}

func TestConflictIndex_UnsortedInput(t *testing.T) {
	event := oneOnOne(30)
	bookings := []*domain.Booking{
		booking(3, at(monday, 15, 0), 30, domain.StatusConfirmed),
		booking(1, at(monday, 9, 0), 30, domain.StatusConfirmed),
		booking(2, at(monday, 12, 0), 30, domain.StatusPending),
	}
	original := []time.Time{bookings[0].StartTime, bookings[1].StartTime, bookings[2].StartTime}

	index := NewConflictIndex(event, bookings, nil, nil, monday)

	assert.True(t, index.HasConflict(at(monday, 15, 0), at(monday, 15, 30)))
	assert.True(t, index.HasConflict(at(monday, 12, 0), at(monday, 12, 30)))
	assert.False(t, index.HasConflict(at(monday, 13, 0), at(monday, 13, 30)))

	// the caller's slice is left as it was
	assert.Equal(t, original, []time.Time{bookings[0].StartTime, bookings[1].StartTime, bookings[2].StartTime})
}

func TestConflictIndex_IgnoresCancelled(t *testing.T) {
	event := oneOnOne(30)
	bookings := []*domain.Booking{booking(1, at(monday, 9, 0), 30, domain.StatusCancelled), nil}

	index := NewConflictIndex(event, bookings, nil, nil, monday)

	assert.False(t, index.HasConflict(at(monday, 9, 0), at(monday, 9, 30)))
	assert.False(t, index.OverlapsBooking(at(monday, 9, 0), at(monday, 9, 30)))
}

func TestConflictIndex_Capacity(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, at(monday, 9, 0), 30, domain.StatusConfirmed),
		booking(2, at(monday, 9, 0), 30, domain.StatusConfirmed),
	}

	t.Run("below capacity", func(t *testing.T) {
		index := NewConflictIndex(groupEvent(30, 3), bookings, nil, nil, monday)
		assert.False(t, index.HasConflict(at(monday, 9, 0), at(monday, 9, 30)))
		assert.Equal(t, 2, index.CountOverlapping(at(monday, 9, 0), at(monday, 9, 30)))
	})

	t.Run("at capacity", func(t *testing.T) {
		full := append(bookings, booking(3, at(monday, 9, 0), 30, domain.StatusPending))
		index := NewConflictIndex(groupEvent(30, 3), full, nil, nil, monday)
		assert.True(t, index.HasConflict(at(monday, 9, 0), at(monday, 9, 30)))
		assert.Equal(t, 3, index.CountBookings(at(monday, 9, 0), at(monday, 9, 30)))
	})

	t.Run("unlimited capacity never fills", func(t *testing.T) {
		event := groupEvent(30, 3)
		event.MaxAttendeesPerSlot = nil
		index := NewConflictIndex(event, bookings, nil, nil, monday)
		assert.False(t, index.HasConflict(at(monday, 9, 0), at(monday, 9, 30)))
	})

	t.Run("group of one behaves like one-on-one", func(t *testing.T) {
		index := NewConflictIndex(groupEvent(30, 1), bookings[:1], nil, nil, monday)
		assert.True(t, index.HasConflict(at(monday, 9, 0), at(monday, 9, 30)))
	})
}

func TestConflictIndex_CalendarBusy(t *testing.T) {
	busy := []domain.CalendarBusySlot{
		{Start: at(monday, 12, 0), End: at(monday, 13, 0), Source: "google"},
		{Start: at(monday, 14, 0), End: at(monday, 14, 0), Source: "broken"},
	}

	event := groupEvent(30, 3)
	event.MaxAttendeesPerSlot = nil
	event.BufferBeforeMinutes = 10
	index := NewConflictIndex(event, nil, busy, nil, monday)

	assert.True(t, index.HasConflict(at(monday, 12, 30), at(monday, 13, 0)))
	assert.True(t, index.HasConflict(at(monday, 13, 0), at(monday, 13, 30)), "before-buffer reaches the busy block")
	assert.False(t, index.HasConflict(at(monday, 13, 30), at(monday, 14, 0)))
	assert.False(t, index.OverlapsCalendar(at(monday, 13, 0), at(monday, 13, 30)))
	assert.False(t, index.OverlapsCalendar(at(monday, 14, 0), at(monday, 14, 30)), "empty busy entries are dropped")
}

func TestConflictIndex_Reservations(t *testing.T) {
	now := at(monday, 8, 0)
	holds := []domain.SlotReservation{
		hold(at(monday, 10, 0), 30, now.Add(10*time.Minute)),
		hold(at(monday, 11, 0), 30, now.Add(-time.Minute)),
	}
	released := hold(at(monday, 12, 0), 30, now.Add(time.Hour))
	released.Status = domain.ReservationReleased
	holds = append(holds, released)

	t.Run("single capacity is blocked by active holds only", func(t *testing.T) {
		index := NewConflictIndex(oneOnOne(30), nil, nil, holds, now)
		assert.True(t, index.HasConflict(at(monday, 10, 0), at(monday, 10, 30)))
		assert.False(t, index.HasConflict(at(monday, 11, 0), at(monday, 11, 30)), "expired")
		assert.False(t, index.HasConflict(at(monday, 12, 0), at(monday, 12, 30)), "released")
	})

	t.Run("multi capacity ignores holds", func(t *testing.T) {
		index := NewConflictIndex(groupEvent(30, 2), nil, nil, holds, now)
		assert.False(t, index.HasConflict(at(monday, 10, 0), at(monday, 10, 30)))
	})
}

func TestConflictIndex_BothBuffersOneOnOne(t *testing.T) {
	event := oneOnOne(30)
	event.BufferBeforeMinutes = 10
	event.BufferAfterMinutes = 15

	bookings := []*domain.Booking{booking(1, at(monday, 10, 0), 30, domain.StatusConfirmed)}
	index := NewConflictIndex(event, bookings, nil, nil, monday)

	// Both meetings carry before+after, so the gap kept on either side is 25 minutes
	tests := []struct {
		name     string
		start    time.Time
		conflict bool
	}{
		{name: "only the booking's after-buffer elapsed", start: at(monday, 10, 45), conflict: true},
		{name: "both buffers elapsed after", start: at(monday, 10, 55), conflict: false},
		{name: "only the slot's after-buffer fits before", start: at(monday, 9, 15), conflict: true},
		{name: "both buffers fit before", start: at(monday, 9, 5), conflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, index.HasConflict(tt.start, tt.start.Add(30*time.Minute)))
		})
	}
}

func TestConflictIndex_CapacityWithBuffers(t *testing.T) {
	event := groupEvent(30, 3)
	event.BufferAfterMinutes = 15

	bookings := []*domain.Booking{
		booking(1, at(monday, 9, 0), 30, domain.StatusConfirmed),
		booking(2, at(monday, 9, 0), 30, domain.StatusConfirmed),
		booking(3, at(monday, 9, 30), 30, domain.StatusConfirmed),
	}
	index := NewConflictIndex(event, bookings, nil, nil, monday)

	tests := []struct {
		name     string
		start    time.Time
		count    int
		conflict bool
	}{
		{name: "after-buffer reaches the next session", start: at(monday, 9, 0), count: 3, conflict: true},
		{name: "earlier sessions do not count", start: at(monday, 9, 30), count: 1, conflict: false},
		{name: "nothing booked", start: at(monday, 10, 0), count: 0, conflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := tt.start.Add(30 * time.Minute)
			assert.Equal(t, tt.count, index.CountOverlapping(tt.start, end))
			assert.Equal(t, tt.conflict, index.HasConflict(tt.start, end))
		})
	}
}
