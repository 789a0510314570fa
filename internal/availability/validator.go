package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ValidateParams is one batch validation pass over snapshots of the three blocking sources
type ValidateParams struct {
	EventType *domain.EventType
	Schedule  *domain.AvailabilitySchedule

	// Requested are the start instants to check, in the caller's order
	Requested []time.Time

	Bookings     []*domain.Booking
	BusySlots    []domain.CalendarBusySlot
	Reservations []domain.SlotReservation

	// OwnReservationID is the caller's own hold; it never blocks the caller
	OwnReservationID string

	Now time.Time

	DisplayTimezone string
}

// Validator checks a batch of requested start times and proposes same-day alternatives
type Validator struct {
	generator *Generator
	converter TimeZoneConverter
}

// NewValidator creates a validator
func NewValidator(generator *Generator, converter TimeZoneConverter) *Validator {
	return &Validator{
		generator: generator,
		converter: converter,
	}
}

// Validate reports one conflict per requested instant that cannot be booked.
// Checks run in order and stop at the first failure: open hours, notice and
// future window, capacity, holds of other invitees, external calendar.
func (v *Validator) Validate(p ValidateParams) (*domain.ValidationResult, error) {
	if err := validateSlotParams(p.EventType, p.Schedule); err != nil {
		return nil, err
	}

	loc, err := v.converter.Location(p.Schedule.Timezone)
	if err != nil {
		return nil, err
	}

	reservations := withoutReservation(p.Reservations, p.OwnReservationID)
	index := NewConflictIndex(p.EventType, p.Bookings, p.BusySlots, reservations, p.Now)
	check := &checker{
		converter: v.converter,
		eventType: p.EventType,
		schedule:  p.Schedule,
		loc:       loc,
		index:     index,
		resolver:  NewResolver(p.Schedule),
		now:       p.Now,
	}
	if p.EventType.IsFullDay() {
		check.dayCounts = CountBookingsByDate(p.Bookings, loc)
	}

	conflicts := make([]domain.SlotConflict, 0)
	conflictDates := make(map[string]time.Time)

	for i, requested := range p.Requested {
		reason, message, err := check.run(requested)
		if err != nil {
			return nil, err
		}
		if reason == "" {
			continue
		}

		conflicts = append(conflicts, domain.SlotConflict{
			Index:       i,
			RequestedAt: requested.UTC(),
			Reason:      reason,
			Message:     message,
		})

		date := civilDate(requested.In(loc))
		conflictDates[dateKey(date)] = date
	}

	if len(conflicts) > 0 && !p.EventType.IsFullDay() {
		if err := v.attachAlternatives(p, index, conflicts, conflictDates, loc); err != nil {
			return nil, err
		}
	}

	return &domain.ValidationResult{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
		Requested:    len(p.Requested),
		Message:      summary(len(p.Requested), len(conflicts)),
	}, nil
}

// attachAlternatives generates each conflicting date once and hands every conflict
// on it the nearest free slots by distance from the requested start
func (v *Validator) attachAlternatives(
	p ValidateParams,
	index *ConflictIndex,
	conflicts []domain.SlotConflict,
	dates map[string]time.Time,
	loc *time.Location,
) error {
	byDate := make(map[string][]domain.Slot, len(dates))
	for key, date := range dates {
		slots, err := v.generator.Generate(GenerateParams{
			StartDate:       date,
			EndDate:         date,
			EventType:       p.EventType,
			Schedule:        p.Schedule,
			Conflicts:       index,
			Now:             p.Now,
			DisplayTimezone: p.DisplayTimezone,
		})
		if err != nil {
			return err
		}
		byDate[key] = slots
	}

	for i := range conflicts {
		key := DateKey(conflicts[i].RequestedAt.In(loc))
		conflicts[i].Alternatives = nearest(byDate[key], conflicts[i].RequestedAt, domain.MaxAlternatives)
	}
	return nil
}

// nearest picks up to limit slots closest to at; ties go to the earlier slot
func nearest(slots []domain.Slot, at time.Time, limit int) []domain.AlternativeSlot {
	alternatives := make([]domain.AlternativeSlot, 0, len(slots))
	for _, s := range slots {
		alternatives = append(alternatives, domain.AlternativeSlot{
			Start:        s.Start,
			End:          s.End,
			DisplayStart: s.DisplayStart,
			DisplayEnd:   s.DisplayEnd,
			Distance:     absDuration(s.Start.Sub(at)),
		})
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		if alternatives[i].Distance != alternatives[j].Distance {
			return alternatives[i].Distance < alternatives[j].Distance
		}
		return alternatives[i].Start.Before(alternatives[j].Start)
	})

	if len(alternatives) > limit {
		alternatives = alternatives[:limit]
	}
	return alternatives
}

// checker holds what the per-instant checks share within one Validate call
type checker struct {
	converter TimeZoneConverter
	eventType *domain.EventType
	schedule  *domain.AvailabilitySchedule
	loc       *time.Location
	index     *ConflictIndex
	resolver  *Resolver
	dayCounts map[string]int
	now       time.Time
}

// run returns an empty reason when the instant is bookable
func (c *checker) run(requested time.Time) (domain.ConflictReason, string, error) {
	if c.eventType.IsFullDay() {
		return c.fullDay(requested)
	}

	start := requested.UTC()
	end := start.Add(c.eventType.Duration())

	inside, err := c.withinHours(start, end)
	if err != nil {
		return "", "", err
	}
	if !inside {
		return plain(domain.ReasonOutsideAvailableHours)
	}

	if start.Before(c.now.Add(c.schedule.MinBookingNotice())) {
		return plain(domain.ReasonNoticeTooShort)
	}
	if c.schedule.HasFutureLimit() && start.After(c.now.Add(c.schedule.FutureWindow())) {
		return plain(domain.ReasonBeyondBookingWindow)
	}

	if c.eventType.Kind == domain.KindOneOnOne {
		if c.index.OverlapsBooking(start, end) {
			return plain(domain.ReasonSlotAlreadyBooked)
		}
	} else if capacity, ok := c.eventType.Capacity(); ok {
		if used := c.index.CountBookings(start, end); used >= capacity {
			return domain.ReasonSlotFull, fmt.Sprintf("%s (%d/%d)", domain.ReasonSlotFull, used, capacity), nil
		}
	}

	if c.index.OverlapsReservation(start, end) {
		return domain.ReasonSlotAlreadyBooked, string(domain.ReasonSlotAlreadyBooked) + " (held)", nil
	}

	if c.index.OverlapsCalendar(start, end) {
		return plain(domain.ReasonCalendarConflict)
	}

	return "", "", nil
}

// fullDay checks a date-granularity request; only the date and its counts matter
func (c *checker) fullDay(requested time.Time) (domain.ConflictReason, string, error) {
	date := civilDate(requested.In(c.loc))

	if !c.resolver.IsAvailable(date) {
		return plain(domain.ReasonOutsideAvailableHours)
	}

	minDate := civilDate(c.now.Add(c.schedule.MinBookingNotice()).In(c.loc))
	if date.Before(minDate) {
		return plain(domain.ReasonNoticeTooShort)
	}
	if c.schedule.HasFutureLimit() {
		maxDate := civilDate(c.now.Add(c.schedule.FutureWindow()).In(c.loc))
		if date.After(maxDate) {
			return plain(domain.ReasonBeyondBookingWindow)
		}
	}

	if capacity, ok := c.eventType.Capacity(); ok {
		if used := c.dayCounts[dateKey(date)]; used >= capacity {
			return domain.ReasonDateFull, fmt.Sprintf("%s (%d/%d)", domain.ReasonDateFull, used, capacity), nil
		}
	}

	return "", "", nil
}

// withinHours tests whether [start, end) fits inside one window of the schedule-local date of start
func (c *checker) withinHours(start, end time.Time) (bool, error) {
	date := civilDate(start.In(c.loc))
	for _, w := range c.resolver.WindowsFor(date) {
		windowStart, windowEnd, err := windowToUTC(c.converter, w, c.schedule.Timezone)
		if err != nil {
			return false, err
		}
		if !start.Before(windowStart) && !end.After(windowEnd) {
			return true, nil
		}
	}
	return false, nil
}

// withoutReservation drops the hold with id from holds; holds itself is left as is
func withoutReservation(holds []domain.SlotReservation, id string) []domain.SlotReservation {
	if id == "" {
		return holds
	}
	out := make([]domain.SlotReservation, 0, len(holds))
	for _, h := range holds {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return out
}

func plain(reason domain.ConflictReason) (domain.ConflictReason, string, error) {
	return reason, string(reason), nil
}

func summary(requested, conflicting int) string {
	if conflicting == 0 {
		return fmt.Sprintf("all %d requested slots are available", requested)
	}
	return fmt.Sprintf("%d of %d requested slots have conflicts", conflicting, requested)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
