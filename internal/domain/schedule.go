package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WeeklyWindow is a recurring open interval on a given weekday, in the schedule's local time.
// Several windows per weekday are allowed and are additive.
type WeeklyWindow struct {
	DayOfWeek time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// IsValid returns true if the window has a positive length
func (w WeeklyWindow) IsValid() bool {
	return !w.StartTime.IsZero() && !w.EndTime.IsZero() && w.StartTime.IsBefore(w.EndTime)
}

// DateOverride replaces the weekly windows of one specific calendar date
type DateOverride struct {
	Date        time.Time // calendar date, time part ignored
	IsAvailable bool
	StartTime   *types.TimeString
	EndTime     *types.TimeString
}

// Window returns the override's open interval.
// An available override without both bounds (or with start >= end) yields ok=false.
func (o DateOverride) Window() (start, end types.TimeString, ok bool) {
	if !o.IsAvailable || o.StartTime == nil || o.EndTime == nil {
		return "", "", false
	}
	if o.StartTime.IsZero() || o.EndTime.IsZero() || !o.StartTime.IsBefore(*o.EndTime) {
		return "", "", false
	}
	return *o.StartTime, *o.EndTime, true
}

// AvailabilitySchedule is a named, timezone-bound policy of recurring and date-specific open hours
type AvailabilitySchedule struct {
	ID       int64
	OwnerID  int64
	Name     string
	Timezone string // IANA zone identifier

	WeeklyWindows []WeeklyWindow
	DateOverrides []DateOverride

	MinBookingNoticeMinutes   int
	MaxBookingDaysInFuture    int // 0 = unlimited
	SlotIntervalMinutes       int
	AutoDetectInviteeTimezone bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinBookingNotice returns the minimum lead time before the earliest bookable instant
func (s *AvailabilitySchedule) MinBookingNotice() time.Duration {
	if s.MinBookingNoticeMinutes <= 0 {
		return 0
	}
	return time.Duration(s.MinBookingNoticeMinutes) * time.Minute
}

// HasFutureLimit returns true if there's a limit on how far in advance bookings can be made
func (s *AvailabilitySchedule) HasFutureLimit() bool {
	return s.MaxBookingDaysInFuture > 0
}

// FutureWindow returns the maximum lead time after which no slot may be offered
func (s *AvailabilitySchedule) FutureWindow() time.Duration {
	return time.Duration(s.MaxBookingDaysInFuture) * 24 * time.Hour
}

// DisplayTimezone resolves the zone used to present slots to the invitee.
// Auto-detection off means the schedule's own zone wins over whatever the caller asked for.
func (s *AvailabilitySchedule) DisplayTimezone(requested string) string {
	if !s.AutoDetectInviteeTimezone || requested == "" {
		return s.Timezone
	}
	return requested
}
