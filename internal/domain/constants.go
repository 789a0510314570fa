package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes     = 30
	DefaultMinBookingNoticeMinutes = 0
	DefaultMaxBookingDaysInFuture  = 0 // 0 = unlimited
	DefaultTimezone                = "UTC"
)

// Business validation constants
const (
	MaxAlternatives             = 3
	MaxRequestedSlots           = 100 // recurring series limit per request
	MaxRangeDays                = 62
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxAttendeeNameLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that count toward conflicts and capacity
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses statuses ignored by availability
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
