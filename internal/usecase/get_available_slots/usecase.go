package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	eventTypeRepo EventTypeRepository
	loader        SnapshotLoader
	generator     *availability.Generator
	converter     availability.TimeZoneConverter
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
	maxRangeDays  int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventTypeRepo EventTypeRepository,
	loader SnapshotLoader,
	converter availability.TimeZoneConverter,
	metrics Metrics,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if maxRangeDays <= 0 {
		maxRangeDays = domain.MaxRangeDays
	}
	return &UseCase{
		eventTypeRepo: eventTypeRepo,
		loader:        loader,
		generator:     availability.NewGenerator(converter),
		converter:     converter,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		maxRangeDays:  maxRangeDays,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: event_type=%d, start=%s, end=%s, timezone=%q",
		req.EventTypeID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.Timezone)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	if req.Timezone != "" {
		if _, err := uc.converter.Location(req.Timezone); err != nil {
			uc.logger.Warn("GetAvailableSlots: unknown timezone %q", req.Timezone)
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем тип события с расписанием
	eventType, err := uc.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			uc.logger.Warn("GetAvailableSlots: event type id=%d not found", req.EventTypeID)
			return nil, ErrEventTypeNotFound
		}
		if errors.Is(err, eventTypeRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule of event type id=%d not found", req.EventTypeID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get event type id=%d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}
	if !eventType.IsActive {
		uc.logger.Warn("GetAvailableSlots: event type id=%d is inactive", req.EventTypeID)
		return nil, ErrEventTypeNotFound
	}
	if eventType.Schedule == nil {
		return nil, ErrScheduleNotFound
	}
	schedule := eventType.Schedule

	loc, err := uc.converter.Location(schedule.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: schedule id=%d has bad timezone: %v", schedule.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Загружаем бронирования, занятость календаря и удержания за диапазон
	from, to := snapshot.DateRangeUTC(req.StartDate, req.EndDate, loc)
	snap, err := uc.loader.Load(ctx, eventType, from, to, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load snapshot for event type id=%d: %v", eventType.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты
	var slots []domain.Slot
	if eventType.IsFullDay() {
		slots, err = uc.generator.GenerateFullDay(availability.FullDayParams{
			StartDate:            req.StartDate,
			EndDate:              req.EndDate,
			EventType:            eventType,
			Schedule:             schedule,
			BookingCountsByDate:  availability.CountBookingsByDate(snap.Bookings, loc),
			ReservedCountsByDate: availability.ReservedCountsByDate(snap.Reservations, loc, now),
			Now:                  now,
			DisplayTimezone:      req.Timezone,
		})
	} else {
		slots, err = uc.generator.Generate(availability.GenerateParams{
			StartDate:       req.StartDate,
			EndDate:         req.EndDate,
			EventType:       eventType,
			Schedule:        schedule,
			Conflicts:       availability.NewConflictIndex(eventType, snap.Bookings, snap.BusySlots, snap.Reservations, now),
			Now:             now,
			DisplayTimezone: req.Timezone,
		})
	}
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for event type id=%d: %v", eventType.ID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.metrics.ObserveSlots(string(eventType.Kind), len(slots))

	uc.logger.Info("GetAvailableSlots: generated %d slots for event type id=%d", len(slots), eventType.ID)

	return &Response{
		EventTypeID: eventType.ID,
		Kind:        string(eventType.Kind),
		Timezone:    schedule.DisplayTimezone(req.Timezone),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        groupByDate(slots, loc),
		Degraded:    snap.Degraded,
	}, nil
}

// groupByDate группирует упорядоченные слоты по дате начала в зоне показа.
// Целые дни группируются по дате расписания, которую они представляют.
func groupByDate(slots []domain.Slot, scheduleLoc *time.Location) []Day {
	days := make([]Day, 0)
	for i := range slots {
		s := &slots[i]
		date := s.DisplayStart.Format(domain.DateFormat)
		if s.IsFullDay {
			date = s.Start.In(scheduleLoc).Format(domain.DateFormat)
		}
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, Day{Date: date, Slots: make([]Slot, 0)})
		}
		day := &days[len(days)-1]
		day.Slots = append(day.Slots, toSlot(s))
	}
	return days
}

func toSlot(s *domain.Slot) Slot {
	slot := Slot{
		Start:           s.Start,
		End:             s.End,
		DisplayStart:    s.DisplayStart,
		DisplayEnd:      s.DisplayEnd,
		IsAvailable:     s.IsAvailable,
		IsFullDay:       s.IsFullDay,
		CurrentBookings: s.CurrentBookings,
		MaxCapacity:     s.MaxCapacity,
	}
	if remaining, ok := s.RemainingSpots(); ok {
		slot.RemainingSpots = ptr.Ptr(remaining)
	}
	return slot
}
