package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// LocalWindow is an open interval on a calendar date in the schedule's local time
type LocalWindow struct {
	Date  time.Time // calendar date (UTC midnight container)
	Start types.TimeString
	End   types.TimeString
}

// Resolver turns a schedule into local windows per calendar date.
// A date override, when present, fully replaces that date's weekly windows.
type Resolver struct {
	overrides map[string]domain.DateOverride
	weekly    map[time.Weekday][]domain.WeeklyWindow
}

// NewResolver indexes the schedule's overrides by date and weekly windows by weekday
func NewResolver(schedule *domain.AvailabilitySchedule) *Resolver {
	r := &Resolver{
		overrides: make(map[string]domain.DateOverride, len(schedule.DateOverrides)),
		weekly:    make(map[time.Weekday][]domain.WeeklyWindow, 7),
	}

	for _, o := range schedule.DateOverrides {
		r.overrides[DateKey(o.Date)] = o
	}

	for _, w := range schedule.WeeklyWindows {
		if !w.IsValid() {
			continue
		}
		r.weekly[w.DayOfWeek] = append(r.weekly[w.DayOfWeek], w)
	}
	for day := range r.weekly {
		windows := r.weekly[day]
		sort.SliceStable(windows, func(i, j int) bool {
			return windows[i].StartTime.IsBefore(windows[j].StartTime)
		})
	}

	return r
}

// WindowsFor returns the windows during which bookings may start on date.
// Windows are returned as configured, disjoint or not.
func (r *Resolver) WindowsFor(date time.Time) []LocalWindow {
	date = civilDate(date)

	if override, ok := r.overrides[dateKey(date)]; ok {
		start, end, open := override.Window()
		if !open {
			return nil
		}
		return []LocalWindow{{Date: date, Start: start, End: end}}
	}

	weekly := r.weekly[date.Weekday()]
	if len(weekly) == 0 {
		return nil
	}

	windows := make([]LocalWindow, 0, len(weekly))
	for _, w := range weekly {
		windows = append(windows, LocalWindow{Date: date, Start: w.StartTime, End: w.EndTime})
	}
	return windows
}

// IsAvailable returns true if date has at least one window
func (r *Resolver) IsAvailable(date time.Time) bool {
	return len(r.WindowsFor(date)) > 0
}

// windowToUTC converts a local window into UTC instants using the schedule's zone
func windowToUTC(converter TimeZoneConverter, w LocalWindow, zoneID string) (start, end time.Time, err error) {
	start, err = converter.ToUTC(w.Start.OnDate(w.Date, time.UTC), zoneID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = converter.ToUTC(w.End.OnDate(w.Date, time.UTC), zoneID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
