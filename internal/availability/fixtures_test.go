package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// monday is 2024-06-10
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
}

func window(day time.Weekday, start, end string) domain.WeeklyWindow {
	return domain.WeeklyWindow{
		DayOfWeek: day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

// weekdaySchedule is 09:00-17:00 Monday to Friday with a 30 minute step
func weekdaySchedule(tz string) *domain.AvailabilitySchedule {
	windows := make([]domain.WeeklyWindow, 0, 5)
	for day := time.Monday; day <= time.Friday; day++ {
		windows = append(windows, window(day, "09:00", "17:00"))
	}
	return &domain.AvailabilitySchedule{
		ID:                  1,
		OwnerID:             100,
		Name:                "Working hours",
		Timezone:            tz,
		WeeklyWindows:       windows,
		SlotIntervalMinutes: 30,
	}
}

// everyDaySchedule is open 09:00-17:00 on all seven days
func everyDaySchedule(tz string) *domain.AvailabilitySchedule {
	s := weekdaySchedule(tz)
	s.WeeklyWindows = append(s.WeeklyWindows,
		window(time.Saturday, "09:00", "17:00"),
		window(time.Sunday, "09:00", "17:00"),
	)
	return s
}

func oneOnOne(durationMinutes int) *domain.EventType {
	return &domain.EventType{
		ID:              10,
		OwnerID:         100,
		ScheduleID:      1,
		Title:           "Intro call",
		Slug:            "intro-call",
		Kind:            domain.KindOneOnOne,
		DurationMinutes: durationMinutes,
		IsActive:        true,
	}
}

func groupEvent(durationMinutes, capacity int) *domain.EventType {
	e := oneOnOne(durationMinutes)
	e.ID = 11
	e.Kind = domain.KindGroup
	e.Title = "Workshop"
	e.Slug = "workshop"
	e.MaxAttendeesPerSlot = ptr.Ptr(capacity)
	return e
}

func fullDayEvent(capacity int) *domain.EventType {
	return &domain.EventType{
		ID:                  12,
		OwnerID:             100,
		ScheduleID:          1,
		Title:               "Desk rental",
		Slug:                "desk",
		Kind:                domain.KindFullDay,
		MaxAttendeesPerSlot: ptr.Ptr(capacity),
		IsActive:            true,
	}
}

func booking(id int64, start time.Time, minutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		EventTypeID: 10,
		UserID:      id + 1000,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(minutes) * time.Minute),
		Status:      status,
	}
}

func hold(start time.Time, minutes int, expiresAt time.Time) domain.SlotReservation {
	return domain.SlotReservation{
		ID:            "hold-" + start.Format(time.RFC3339),
		EventTypeID:   10,
		UserID:        7,
		Start:         start,
		End:           start.Add(time.Duration(minutes) * time.Minute),
		SpotsReserved: 1,
		Status:        domain.ReservationPending,
		ExpiresAt:     expiresAt,
	}
}

func starts(slots []domain.Slot) []time.Time {
	out := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}
