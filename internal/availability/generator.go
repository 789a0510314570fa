package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// GenerateParams is one slot-generation pass.
// StartDate and EndDate are calendar dates of the schedule's own zone; their time part is ignored.
type GenerateParams struct {
	StartDate time.Time
	EndDate   time.Time

	EventType *domain.EventType
	Schedule  *domain.AvailabilitySchedule
	Conflicts *ConflictIndex // nil means nothing blocks

	Now time.Time

	// DisplayTimezone is the zone the caller asked for; the schedule decides whether it is honoured
	DisplayTimezone string
}

// Generator produces bookable time slots for time-granularity event types
type Generator struct {
	converter TimeZoneConverter
}

// NewGenerator creates a generator
func NewGenerator(converter TimeZoneConverter) *Generator {
	return &Generator{converter: converter}
}

// Generate returns the free slots of [StartDate, EndDate], ascending by start.
// Output depends only on the params, so identical inputs give identical lists.
func (g *Generator) Generate(p GenerateParams) ([]domain.Slot, error) {
	if err := validateSlotParams(p.EventType, p.Schedule); err != nil {
		return nil, err
	}
	if p.EventType.IsFullDay() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, p.EventType.Kind)
	}

	startDate, endDate := civilDate(p.StartDate), civilDate(p.EndDate)
	if endDate.Before(startDate) {
		return nil, ErrInvalidRange
	}

	displayTZ := p.Schedule.DisplayTimezone(p.DisplayTimezone)
	if _, err := g.converter.Location(displayTZ); err != nil {
		return nil, err
	}
	if _, err := g.converter.Location(p.Schedule.Timezone); err != nil {
		return nil, err
	}

	conflicts := p.Conflicts
	if conflicts == nil {
		conflicts = NewConflictIndex(p.EventType, nil, nil, nil, p.Now)
	}

	var (
		resolver          = NewResolver(p.Schedule)
		duration          = p.EventType.Duration()
		interval          = p.EventType.EffectiveInterval(p.Schedule)
		minimum           = p.Now.Add(p.Schedule.MinBookingNotice())
		maximum           = p.Now.Add(p.Schedule.FutureWindow())
		bounded           = p.Schedule.HasFutureLimit()
		withCounts        = p.EventType.IsCapacityBearing()
		capacity, limited = p.EventType.Capacity()
	)

	slots := make([]domain.Slot, 0)

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		for _, w := range resolver.WindowsFor(date) {
			windowStart, windowEnd, err := windowToUTC(g.converter, w, p.Schedule.Timezone)
			if err != nil {
				return nil, err
			}
			if windowEnd.Before(minimum) {
				continue
			}
			if bounded && windowStart.After(maximum) {
				continue
			}

			for cursor := windowStart; !cursor.Add(duration).After(windowEnd); cursor = cursor.Add(interval) {
				if cursor.Before(minimum) {
					continue
				}
				if bounded && cursor.After(maximum) {
					break
				}

				end := cursor.Add(duration)
				if conflicts.HasConflict(cursor, end) {
					continue
				}

				slot, err := g.slot(cursor, end, displayTZ)
				if err != nil {
					return nil, err
				}
				if withCounts {
					slot.CurrentBookings = conflicts.CountOverlapping(cursor, end)
					if limited {
						c := capacity
						slot.MaxCapacity = &c
					}
				}
				slots = append(slots, slot)
			}
		}
	}

	return sortAndDedupe(slots), nil
}

func (g *Generator) slot(start, end time.Time, displayTZ string) (domain.Slot, error) {
	displayStart, err := g.converter.FromUTC(start, displayTZ)
	if err != nil {
		return domain.Slot{}, err
	}
	displayEnd, err := g.converter.FromUTC(end, displayTZ)
	if err != nil {
		return domain.Slot{}, err
	}

	return domain.Slot{
		Start:           start.UTC(),
		End:             end.UTC(),
		DisplayStart:    displayStart,
		DisplayEnd:      displayEnd,
		DisplayTimezone: displayTZ,
		IsAvailable:     true,
	}, nil
}

// sortAndDedupe orders slots by start; overlapping windows may produce the same start twice
func sortAndDedupe(slots []domain.Slot) []domain.Slot {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	out := slots[:0]
	for i, s := range slots {
		if i > 0 && s.Start.Equal(out[len(out)-1].Start) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func validateSlotParams(eventType *domain.EventType, schedule *domain.AvailabilitySchedule) error {
	if eventType == nil {
		return fmt.Errorf("%w: event type is nil", ErrInvalidEventType)
	}
	if !eventType.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEventType, eventType.Kind)
	}
	if !eventType.IsFullDay() && eventType.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidEventType, eventType.DurationMinutes)
	}
	if schedule == nil {
		return ErrMissingSchedule
	}
	return nil
}
