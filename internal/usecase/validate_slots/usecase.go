package validate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
)

// UseCase use case для пакетной проверки запрошенных слотов без записи
type UseCase struct {
	eventTypeRepo EventTypeRepository
	loader        SnapshotLoader
	validator     *availability.Validator
	converter     availability.TimeZoneConverter
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventTypeRepo EventTypeRepository,
	loader SnapshotLoader,
	converter availability.TimeZoneConverter,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventTypeRepo: eventTypeRepo,
		loader:        loader,
		validator:     availability.NewValidator(availability.NewGenerator(converter), converter),
		converter:     converter,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case проверки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateSlots: event_type=%d, requested=%d", req.EventTypeID, len(req.StartTimes))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateSlots: validation failed: %v", err)
		return nil, err
	}
	if req.Timezone != "" {
		if _, err := uc.converter.Location(req.Timezone); err != nil {
			uc.logger.Warn("ValidateSlots: unknown timezone %q", req.Timezone)
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}

	now := uc.timeProvider.Now()

	// 2. Получаем тип события с расписанием
	eventType, err := uc.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			uc.logger.Warn("ValidateSlots: event type id=%d not found", req.EventTypeID)
			return nil, ErrEventTypeNotFound
		}
		if errors.Is(err, eventTypeRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("ValidateSlots: failed to get event type id=%d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}
	if !eventType.IsActive {
		uc.logger.Warn("ValidateSlots: event type id=%d is inactive", req.EventTypeID)
		return nil, ErrEventTypeNotFound
	}
	if eventType.Schedule == nil {
		return nil, ErrScheduleNotFound
	}

	loc, err := uc.converter.Location(eventType.Schedule.Timezone)
	if err != nil {
		uc.logger.Error("ValidateSlots: schedule id=%d has bad timezone: %v", eventType.Schedule.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Загружаем источники за все затронутые даты, чтобы хватило данных для альтернатив
	first, last := span(req.StartTimes)
	from, to := snapshot.DateRangeUTC(first.In(loc), last.In(loc), loc)
	snap, err := uc.loader.Load(ctx, eventType, from, to, now)
	if err != nil {
		uc.logger.Error("ValidateSlots: failed to load snapshot for event type id=%d: %v", eventType.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Проверяем
	result, err := uc.validator.Validate(availability.ValidateParams{
		EventType:        eventType,
		Schedule:         eventType.Schedule,
		Requested:        req.StartTimes,
		Bookings:         snap.Bookings,
		BusySlots:        snap.BusySlots,
		Reservations:     snap.Reservations,
		OwnReservationID: req.ReservationID,
		Now:              now,
		DisplayTimezone:  req.Timezone,
	})
	if err != nil {
		uc.logger.Error("ValidateSlots: validation of event type id=%d failed: %v", eventType.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, c := range result.Conflicts {
		uc.metrics.IncConflict(string(c.Reason))
	}

	uc.logger.Info("ValidateSlots: event type id=%d, %s", eventType.ID, result.Message)

	return &Response{
		EventTypeID: eventType.ID,
		Timezone:    eventType.Schedule.DisplayTimezone(req.Timezone),
		Result:      result,
		Degraded:    snap.Degraded,
	}, nil
}

// span возвращает самый ранний и самый поздний момент
func span(times []time.Time) (time.Time, time.Time) {
	first, last := times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	return first, last
}
