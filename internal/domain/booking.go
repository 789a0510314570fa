package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for a known booking status
func (s BookingStatus) IsValid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// Booking represents an existing booking of an event type
type Booking struct {
	ID            int64
	EventTypeID   int64
	UserID        int64
	StartTime     time.Time // UTC
	EndTime       time.Time // UTC
	Status        BookingStatus
	AttendeeName  string
	AttendeeEmail string
	Timezone      string  // invitee display zone at booking time
	SeriesID      *string // shared by bookings created as one recurring series
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts toward conflicts and capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Interval returns the booking's [start, end) span
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// BookingsFilter filter for reading bookings of one or more event types
type BookingsFilter struct {
	EventTypeIDs    []int64    // required, event types sharing one schedule
	From            *time.Time // bookings ending after From (optional)
	To              *time.Time // bookings starting before To (optional)
	Status          *BookingStatus
	IncludeInactive bool // include cancelled bookings
}
