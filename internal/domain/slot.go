package domain

import "time"

// Slot is a bookable time slot (or a whole date for full-day event types)
type Slot struct {
	Start time.Time // UTC
	End   time.Time // UTC

	// DisplayStart/DisplayEnd are Start/End in the presentation zone
	DisplayStart    time.Time
	DisplayEnd      time.Time
	DisplayTimezone string

	IsAvailable bool
	IsFullDay   bool

	// Capacity fields are filled only for capacity-bearing kinds
	CurrentBookings int
	MaxCapacity     *int
}

// RemainingSpots returns the number of free spots, or ok=false for unlimited capacity
func (s *Slot) RemainingSpots() (remaining int, ok bool) {
	if s.MaxCapacity == nil {
		return 0, false
	}
	remaining = *s.MaxCapacity - s.CurrentBookings
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// IsFull returns true if the slot has a capacity and no free spots
func (s *Slot) IsFull() bool {
	remaining, ok := s.RemainingSpots()
	return ok && remaining == 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *Slot) OccupancyRate() float64 {
	if s.MaxCapacity == nil || *s.MaxCapacity == 0 {
		return 0
	}
	return float64(s.CurrentBookings) / float64(*s.MaxCapacity) * 100
}

// AlternativeSlot is a same-day suggestion for a conflicting request
type AlternativeSlot struct {
	Start        time.Time
	End          time.Time
	DisplayStart time.Time
	DisplayEnd   time.Time
	Distance     time.Duration // absolute distance from the requested start
}

// ConflictReason is a user-facing reason tag
type ConflictReason string

const (
	ReasonOutsideAvailableHours ConflictReason = "outside available hours"
	ReasonSlotAlreadyBooked     ConflictReason = "slot already booked"
	ReasonSlotFull              ConflictReason = "slot is fully booked"
	ReasonDateFull              ConflictReason = "date is fully booked"
	ReasonCalendarConflict      ConflictReason = "conflicts with another calendar event"
	ReasonNoticeTooShort        ConflictReason = "booking notice too short"
	ReasonBeyondBookingWindow   ConflictReason = "beyond booking window"
)

// SlotConflict describes why one requested start time cannot be booked
type SlotConflict struct {
	Index        int
	RequestedAt  time.Time
	Reason       ConflictReason
	Message      string // reason with details, e.g. "slot is fully booked (3/3)"
	Alternatives []AlternativeSlot
}

// ValidationResult is the outcome of validating a batch of requested start times
type ValidationResult struct {
	HasConflicts bool
	Conflicts    []SlotConflict
	Requested    int
	Message      string
}
