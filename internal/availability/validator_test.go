package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func newValidator() *Validator {
	converter := NewIANAConverter()
	return NewValidator(NewGenerator(converter), converter)
}

func TestValidate_GroupCapacity(t *testing.T) {
	event := groupEvent(30, 3)
	bookings := []*domain.Booking{
		booking(1, at(monday, 9, 0), 30, domain.StatusConfirmed),
		booking(2, at(monday, 9, 0), 30, domain.StatusConfirmed),
	}

	result, err := newValidator().Validate(ValidateParams{
		EventType: event,
		Schedule:  weekdaySchedule("UTC"),
		Requested: []time.Time{at(monday, 9, 0)},
		Bookings:  bookings,
		Now:       beforeJune,
	})
	require.NoError(t, err)
	assert.False(t, result.HasConflicts)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, "all 1 requested slots are available", result.Message)

	bookings = append(bookings, booking(3, at(monday, 9, 0), 30, domain.StatusConfirmed))
	result, err = newValidator().Validate(ValidateParams{
		EventType: event,
		Schedule:  weekdaySchedule("UTC"),
		Requested: []time.Time{at(monday, 9, 0)},
		Bookings:  bookings,
		Now:       beforeJune,
	})
	require.NoError(t, err)
	require.True(t, result.HasConflicts)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, domain.ReasonSlotFull, result.Conflicts[0].Reason)
	assert.Contains(t, result.Conflicts[0].Message, "3/3")
}

func TestValidate_Reasons(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	saturday := monday.AddDate(0, 0, 5)

	tests := []struct {
		name      string
		event     *domain.EventType
		schedule  func() *domain.AvailabilitySchedule
		requested time.Time
		bookings  []*domain.Booking
		busy      []domain.CalendarBusySlot
		now       time.Time
		want      domain.ConflictReason
	}{
		{
			name:      "free slot",
			requested: at(monday, 11, 0),
			want:      "",
		},
		{
			name:      "before opening",
			requested: at(monday, 8, 30),
			want:      domain.ReasonOutsideAvailableHours,
		},
		{
			name:      "runs past closing",
			requested: at(monday, 16, 45),
			want:      domain.ReasonOutsideAvailableHours,
		},
		{
			name:      "weekend",
			requested: at(saturday, 10, 0),
			want:      domain.ReasonOutsideAvailableHours,
		},
		{
			name:      "already booked",
			requested: at(monday, 10, 0),
			bookings:  []*domain.Booking{booking(1, at(monday, 10, 15), 30, domain.StatusConfirmed)},
			want:      domain.ReasonSlotAlreadyBooked,
		},
		{
			name:      "cancelled booking does not block",
			requested: at(monday, 10, 0),
			bookings:  []*domain.Booking{booking(1, at(monday, 10, 0), 30, domain.StatusCancelled)},
			want:      "",
		},
		{
			name:      "calendar busy",
			requested: at(tuesday, 14, 30),
			busy:      []domain.CalendarBusySlot{{Start: at(tuesday, 14, 0), End: at(tuesday, 15, 0)}},
			want:      domain.ReasonCalendarConflict,
		},
		{
			name: "notice too short",
			schedule: func() *domain.AvailabilitySchedule {
				s := weekdaySchedule("UTC")
				s.MinBookingNoticeMinutes = 120
				return s
			},
			requested: at(monday, 10, 0),
			now:       at(monday, 9, 0),
			want:      domain.ReasonNoticeTooShort,
		},
		{
			name: "beyond booking window",
			schedule: func() *domain.AvailabilitySchedule {
				s := weekdaySchedule("UTC")
				s.MaxBookingDaysInFuture = 3
				return s
			},
			requested: at(monday, 10, 0),
			want:      domain.ReasonBeyondBookingWindow,
		},
		{
			name:      "hours are checked in the schedule zone",
			schedule:  func() *domain.AvailabilitySchedule { return weekdaySchedule("America/New_York") },
			requested: at(monday, 10, 0), // 06:00 in New York
			want:      domain.ReasonOutsideAvailableHours,
		},
		{
			name: "buffers are not applied",
			event: func() *domain.EventType {
				e := oneOnOne(30)
				e.BufferAfterMinutes = 15
				return e
			}(),
			requested: at(monday, 10, 30),
			bookings:  []*domain.Booking{booking(1, at(monday, 10, 0), 30, domain.StatusConfirmed)},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := tt.event
			if event == nil {
				event = oneOnOne(30)
			}
			schedule := weekdaySchedule("UTC")
			if tt.schedule != nil {
				schedule = tt.schedule()
			}
			now := tt.now
			if now.IsZero() {
				now = beforeJune
			}

			result, err := newValidator().Validate(ValidateParams{
				EventType: event,
				Schedule:  schedule,
				Requested: []time.Time{tt.requested},
				Bookings:  tt.bookings,
				BusySlots: tt.busy,
				Now:       now,
			})
			require.NoError(t, err)

			if tt.want == "" {
				assert.False(t, result.HasConflicts)
				return
			}
			require.Len(t, result.Conflicts, 1)
			assert.Equal(t, tt.want, result.Conflicts[0].Reason)
			assert.Equal(t, string(tt.want), result.Conflicts[0].Message)
		})
	}
}

func TestValidate_Alternatives(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	bookings := []*domain.Booking{
		booking(1, at(monday, 10, 0), 30, domain.StatusConfirmed),
		booking(2, at(tuesday, 16, 30), 30, domain.StatusConfirmed),
	}

	result, err := newValidator().Validate(ValidateParams{
		EventType: oneOnOne(30),
		Schedule:  weekdaySchedule("UTC"),
		Requested: []time.Time{at(monday, 10, 0), at(monday, 11, 0), at(tuesday, 16, 30)},
		Bookings:  bookings,
		Now:       beforeJune,
	})
	require.NoError(t, err)
	require.True(t, result.HasConflicts)
	require.Len(t, result.Conflicts, 2)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, "2 of 3 requested slots have conflicts", result.Message)

	first := result.Conflicts[0]
	assert.Equal(t, 0, first.Index)
	require.Len(t, first.Alternatives, 3)
	assert.Equal(t, at(monday, 9, 30), first.Alternatives[0].Start)
	assert.Equal(t, at(monday, 10, 30), first.Alternatives[1].Start)
	assert.Equal(t, at(monday, 9, 0), first.Alternatives[2].Start)
	assert.Equal(t, 30*time.Minute, first.Alternatives[0].Distance)

	// alternatives stay on the requested date
	second := result.Conflicts[1]
	assert.Equal(t, 2, second.Index)
	require.Len(t, second.Alternatives, 3)
	for _, alt := range second.Alternatives {
		assert.Equal(t, tuesday.Day(), alt.Start.Day())
	}
	assert.Equal(t, at(tuesday, 16, 0), second.Alternatives[0].Start)
}

func TestValidate_Holds(t *testing.T) {
	held := hold(at(monday, 10, 0), 30, beforeJune.Add(time.Hour))

	t.Run("held by another invitee", func(t *testing.T) {
		result, err := newValidator().Validate(ValidateParams{
			EventType:    oneOnOne(30),
			Schedule:     weekdaySchedule("UTC"),
			Requested:    []time.Time{at(monday, 10, 0)},
			Reservations: []domain.SlotReservation{held},
			Now:          beforeJune,
		})
		require.NoError(t, err)
		require.Len(t, result.Conflicts, 1)

		conflict := result.Conflicts[0]
		assert.Equal(t, domain.ReasonSlotAlreadyBooked, conflict.Reason)
		assert.Equal(t, "slot already booked (held)", conflict.Message)
		require.Len(t, conflict.Alternatives, 3)
		for _, alt := range conflict.Alternatives {
			assert.NotEqual(t, at(monday, 10, 0), alt.Start)
		}
	})

	t.Run("own hold does not block", func(t *testing.T) {
		result, err := newValidator().Validate(ValidateParams{
			EventType:        oneOnOne(30),
			Schedule:         weekdaySchedule("UTC"),
			Requested:        []time.Time{at(monday, 10, 0)},
			Reservations:     []domain.SlotReservation{held},
			OwnReservationID: held.ID,
			Now:              beforeJune,
		})
		require.NoError(t, err)
		assert.False(t, result.HasConflicts)
	})

	t.Run("expired hold does not block", func(t *testing.T) {
		expired := hold(at(monday, 10, 0), 30, beforeJune.Add(-time.Minute))
		result, err := newValidator().Validate(ValidateParams{
			EventType:    oneOnOne(30),
			Schedule:     weekdaySchedule("UTC"),
			Requested:    []time.Time{at(monday, 10, 0)},
			Reservations: []domain.SlotReservation{expired},
			Now:          beforeJune,
		})
		require.NoError(t, err)
		assert.False(t, result.HasConflicts)
	})

	t.Run("group ignores holds", func(t *testing.T) {
		result, err := newValidator().Validate(ValidateParams{
			EventType:    groupEvent(30, 3),
			Schedule:     weekdaySchedule("UTC"),
			Requested:    []time.Time{at(monday, 10, 0)},
			Reservations: []domain.SlotReservation{held},
			Now:          beforeJune,
		})
		require.NoError(t, err)
		assert.False(t, result.HasConflicts)
	})
}

func TestValidate_FullDay(t *testing.T) {
	bookings := make([]*domain.Booking, 0, 5)
	for i := 0; i < 5; i++ {
		bookings = append(bookings, booking(int64(i+1), at(monday, 9, 0), 60, domain.StatusConfirmed))
	}

	result, err := newValidator().Validate(ValidateParams{
		EventType: fullDayEvent(5),
		Schedule:  weekdaySchedule("UTC"),
		Requested: []time.Time{monday, monday.AddDate(0, 0, 1), monday.AddDate(0, 0, 5)},
		Bookings:  bookings,
		Now:       beforeJune,
	})
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 2)

	assert.Equal(t, domain.ReasonDateFull, result.Conflicts[0].Reason)
	assert.Equal(t, "date is fully booked (5/5)", result.Conflicts[0].Message)
	assert.Empty(t, result.Conflicts[0].Alternatives)

	assert.Equal(t, 2, result.Conflicts[1].Index)
	assert.Equal(t, domain.ReasonOutsideAvailableHours, result.Conflicts[1].Reason)
}

func TestValidate_Errors(t *testing.T) {
	_, err := newValidator().Validate(ValidateParams{EventType: oneOnOne(30)})
	assert.ErrorIs(t, err, ErrMissingSchedule)

	_, err = newValidator().Validate(ValidateParams{EventType: oneOnOne(30), Schedule: weekdaySchedule("Bad/Zone")})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
