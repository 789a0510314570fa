package domain

import "time"

// MeetingKind determines the capacity model of an event type
type MeetingKind string

const (
	KindOneOnOne MeetingKind = "one_on_one"
	KindGroup    MeetingKind = "group"
	KindFullDay  MeetingKind = "full_day"
	KindOneOff   MeetingKind = "one_off"
)

// IsValid returns true for a known meeting kind
func (k MeetingKind) IsValid() bool {
	switch k {
	case KindOneOnOne, KindGroup, KindFullDay, KindOneOff:
		return true
	default:
		return false
	}
}

// EventType describes a bookable meeting: its length, buffers and capacity model
type EventType struct {
	ID          int64
	OwnerID     int64
	ScheduleID  int64
	Title       string
	Slug        string
	Kind        MeetingKind
	Description *string

	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	SlotIntervalMinutes  int  // <= 0 falls back to the schedule's interval
	MaxAttendeesPerSlot  *int // meaningful for group, full-day and one-off kinds
	RequiresConfirmation bool
	IsActive             bool

	// Schedule is loaded together with the event type
	Schedule *AvailabilitySchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the meeting length
func (e *EventType) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// BufferBefore returns the padding tested before a candidate slot
func (e *EventType) BufferBefore() time.Duration {
	if e.BufferBeforeMinutes <= 0 {
		return 0
	}
	return time.Duration(e.BufferBeforeMinutes) * time.Minute
}

// BufferAfter returns the padding tested after a candidate slot
func (e *EventType) BufferAfter() time.Duration {
	if e.BufferAfterMinutes <= 0 {
		return 0
	}
	return time.Duration(e.BufferAfterMinutes) * time.Minute
}

// EffectiveInterval returns the step between candidate slot starts.
// Falls back to the schedule's interval, then to the event duration.
func (e *EventType) EffectiveInterval(schedule *AvailabilitySchedule) time.Duration {
	if e.SlotIntervalMinutes > 0 {
		return time.Duration(e.SlotIntervalMinutes) * time.Minute
	}
	if schedule != nil && schedule.SlotIntervalMinutes > 0 {
		return time.Duration(schedule.SlotIntervalMinutes) * time.Minute
	}
	return e.Duration()
}

// Capacity returns the number of simultaneous bookings a slot may hold.
// One-on-one is always 1; other kinds without a limit report ok=false.
func (e *EventType) Capacity() (capacity int, ok bool) {
	if e.Kind == KindOneOnOne {
		return 1, true
	}
	if e.MaxAttendeesPerSlot == nil {
		return 0, false
	}
	return *e.MaxAttendeesPerSlot, true
}

// IsSingleCapacity returns true when a slot holds exactly one booking
func (e *EventType) IsSingleCapacity() bool {
	capacity, ok := e.Capacity()
	return ok && capacity == 1
}

// IsFullDay returns true for date-granularity event types
func (e *EventType) IsFullDay() bool {
	return e.Kind == KindFullDay
}

// IsCapacityBearing returns true for kinds that report per-slot capacity to callers
func (e *EventType) IsCapacityBearing() bool {
	return e.Kind == KindGroup || e.Kind == KindFullDay || e.Kind == KindOneOff
}
