package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestGenerateFullDay_CapacityPerDate(t *testing.T) {
	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	june30 := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	bookings := make([]*domain.Booking, 0, 6)
	for i := 0; i < 5; i++ {
		bookings = append(bookings, booking(int64(i+1), at(monday, 9+i, 0), 60, domain.StatusConfirmed))
	}
	// cancelled bookings don't count
	bookings = append(bookings, booking(6, at(monday.AddDate(0, 0, 1), 9, 0), 60, domain.StatusCancelled))

	slots, err := NewGenerator(NewIANAConverter()).GenerateFullDay(FullDayParams{
		StartDate:           june1,
		EndDate:             june30,
		EventType:           fullDayEvent(5),
		Schedule:            everyDaySchedule("UTC"),
		BookingCountsByDate: CountBookingsByDate(bookings, time.UTC),
		Now:                 time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, slots, 30)

	for _, s := range slots {
		assert.True(t, s.IsFullDay)
		require.NotNil(t, s.MaxCapacity)
		if s.Start.Equal(monday) {
			assert.False(t, s.IsAvailable, "June 10 holds 5 of 5")
			assert.Equal(t, 5, s.CurrentBookings)
			continue
		}
		assert.True(t, s.IsAvailable, "%s should be open", s.Start)
	}
}

func TestGenerateFullDay_ReservationsCount(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, at(monday, 9, 0), 60, domain.StatusConfirmed),
	}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	holds := []domain.SlotReservation{hold(at(monday, 10, 0), 60, now.Add(time.Hour))}
	holds[0].SpotsReserved = 1

	slots, err := NewGenerator(NewIANAConverter()).GenerateFullDay(FullDayParams{
		StartDate:            monday,
		EndDate:              monday,
		EventType:            fullDayEvent(2),
		Schedule:             weekdaySchedule("UTC"),
		BookingCountsByDate:  CountBookingsByDate(bookings, time.UTC),
		ReservedCountsByDate: ReservedCountsByDate(holds, time.UTC, now),
		Now:                  now,
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].IsAvailable)
	assert.Equal(t, 1, slots[0].CurrentBookings)
}

func TestGenerateFullDay_Bounds(t *testing.T) {
	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	schedule := everyDaySchedule("UTC")
	schedule.MinBookingNoticeMinutes = 24 * 60
	schedule.MaxBookingDaysInFuture = 5

	slots, err := NewGenerator(NewIANAConverter()).GenerateFullDay(FullDayParams{
		StartDate: june1,
		EndDate:   june1.AddDate(0, 0, 29),
		EventType: fullDayEvent(5),
		Schedule:  schedule,
		Now:       june1.Add(8 * time.Hour),
	})
	require.NoError(t, err)

	// June 2 through June 6
	require.Len(t, slots, 5)
	assert.Equal(t, june1.AddDate(0, 0, 1), slots[0].Start)
	assert.Equal(t, june1.AddDate(0, 0, 5), slots[4].Start)
}

func TestGenerateFullDay_ClosedDatesAndZone(t *testing.T) {
	slots, err := NewGenerator(NewIANAConverter()).GenerateFullDay(FullDayParams{
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 6),
		EventType: fullDayEvent(5),
		Schedule:  weekdaySchedule("Europe/Berlin"),
		Now:       beforeJune,
	})
	require.NoError(t, err)

	// Saturday and Sunday have no windows
	require.Len(t, slots, 5)
	// Berlin midnight to midnight in UTC
	assert.Equal(t, time.Date(2024, 6, 9, 22, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2024, 6, 10, 22, 0, 0, 0, time.UTC), slots[0].End)
	assert.Equal(t, 0, slots[0].DisplayStart.Hour())
}

func TestGenerateFullDay_UnlimitedCapacity(t *testing.T) {
	event := fullDayEvent(5)
	event.MaxAttendeesPerSlot = nil

	slots, err := NewGenerator(NewIANAConverter()).GenerateFullDay(FullDayParams{
		StartDate:           monday,
		EndDate:             monday,
		EventType:           event,
		Schedule:            weekdaySchedule("UTC"),
		BookingCountsByDate: map[string]int{"2024-06-10": 1000},
		Now:                 beforeJune,
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].IsAvailable)
	assert.Nil(t, slots[0].MaxCapacity)
}

func TestGenerateFullDay_RejectsTimeKinds(t *testing.T) {
	_, err := NewGenerator(NewIANAConverter()).GenerateFullDay(FullDayParams{
		StartDate: monday,
		EndDate:   monday,
		EventType: oneOnOne(30),
		Schedule:  weekdaySchedule("UTC"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestCountBookingsByDate_UsesScheduleZone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	bookings := []*domain.Booking{
		booking(1, time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC), 30, domain.StatusConfirmed),
		booking(2, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), 30, domain.StatusPending),
	}

	counts := CountBookingsByDate(bookings, tokyo)
	assert.Equal(t, map[string]int{"2024-06-10": 1, "2024-06-11": 1}, counts)
}
