package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	eventTypeRepo   EventTypeRepository
	loader          SnapshotLoader
	reservationRepo ReservationRepository
	validator       *availability.Validator
	converter       availability.TimeZoneConverter
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	eventTypeRepo EventTypeRepository,
	loader SnapshotLoader,
	reservationRepo ReservationRepository,
	converter availability.TimeZoneConverter,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		eventTypeRepo:   eventTypeRepo,
		loader:          loader,
		reservationRepo: reservationRepo,
		validator:       availability.NewValidator(availability.NewGenerator(converter), converter),
		converter:       converter,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка и запись выполняются в одной сериализуемой транзакции:
// бронирования читаются с блокировкой, поэтому два запроса не займут один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, event_type=%d, requested=%d",
		req.UserID, req.EventTypeID, len(req.StartTimes))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if req.Timezone != "" {
		if _, err := uc.converter.Location(req.Timezone); err != nil {
			uc.logger.Warn("CreateBooking: unknown timezone %q", req.Timezone)
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var created []*domain.Booking
	var seriesID *string
	if len(req.StartTimes) > 1 {
		id := uuid.NewString()
		seriesID = &id
	}

	// 3. Выполняем проверку и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем тип события с расписанием
		eventType, err := uc.getEventType(txCtx, req.EventTypeID)
		if err != nil {
			return err
		}
		schedule := eventType.Schedule

		loc, err := uc.converter.Location(schedule.Timezone)
		if err != nil {
			uc.logger.Error("CreateBooking: schedule id=%d has bad timezone: %v", schedule.ID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		intervals := bookingIntervals(eventType, req.StartTimes, loc)
		if err := validateSeries(intervals); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		// 3.2. Читаем бронирования (с блокировкой), занятость календаря и удержания
		first, last := span(req.StartTimes)
		from, to := snapshot.DateRangeUTC(first.In(loc), last.In(loc), loc)
		snap, err := uc.loader.Load(txCtx, eventType, from, to, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load snapshot for event type id=%d: %v", eventType.ID, err)
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		// 3.3. Проверяем все запрошенные слоты
		params := availability.ValidateParams{
			EventType:       eventType,
			Schedule:        schedule,
			Requested:       req.StartTimes,
			Bookings:        snap.Bookings,
			BusySlots:       snap.BusySlots,
			Reservations:    snap.Reservations,
			Now:             now,
			DisplayTimezone: req.Timezone,
		}
		if req.ReservationID != nil {
			params.OwnReservationID = *req.ReservationID
		}
		result, err := uc.validator.Validate(params)
		if err != nil {
			uc.logger.Error("CreateBooking: validation of event type id=%d failed: %v", eventType.ID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		if result.HasConflicts {
			for _, c := range result.Conflicts {
				uc.metrics.IncConflict(string(c.Reason))
			}
			uc.logger.Warn("CreateBooking: event type id=%d rejected, %s", eventType.ID, result.Message)
			return &ConflictError{Result: result}
		}

		// 3.4. Создаем бронирования
		status := domain.StatusConfirmed
		if eventType.RequiresConfirmation {
			status = domain.StatusPending
		}
		timezone := schedule.DisplayTimezone(req.Timezone)

		created = make([]*domain.Booking, 0, len(intervals))
		for _, iv := range intervals {
			booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
				EventTypeID:   eventType.ID,
				UserID:        req.UserID,
				StartTime:     iv.Start,
				EndTime:       iv.End,
				Status:        status,
				AttendeeName:  req.AttendeeName,
				AttendeeEmail: req.AttendeeEmail,
				Timezone:      timezone,
				SeriesID:      seriesID,
				Notes:         req.Notes,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
			}
			created = append(created, booking)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: concurrent write on event type id=%d, giving up: %v", req.EventTypeID, err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
		}
		return nil, err
	}

	// 4. Снимаем удержание после фиксации транзакции
	if req.ReservationID != nil && uc.reservationRepo != nil {
		if err := uc.reservationRepo.Release(ctx, req.EventTypeID, *req.ReservationID); err != nil {
			uc.logger.Warn("CreateBooking: failed to release reservation %s: %v", *req.ReservationID, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created %d bookings for event type id=%d", len(created), req.EventTypeID)

	resp := &Response{
		SeriesID: seriesID,
		Bookings: make([]Booking, 0, len(created)),
	}
	for _, b := range created {
		resp.Bookings = append(resp.Bookings, toBooking(b))
	}
	return resp, nil
}

func (uc *UseCase) getEventType(ctx context.Context, id int64) (*domain.EventType, error) {
	eventType, err := uc.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			uc.logger.Warn("CreateBooking: event type id=%d not found", id)
			return nil, ErrEventTypeNotFound
		}
		if errors.Is(err, eventTypeRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get event type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get event type: %w", ErrInternal, err)
	}
	if !eventType.IsActive {
		uc.logger.Warn("CreateBooking: event type id=%d is inactive", id)
		return nil, ErrEventTypeNotFound
	}
	if eventType.Schedule == nil {
		return nil, ErrScheduleNotFound
	}
	return eventType, nil
}

// bookingIntervals вычисляет интервалы создаваемых бронирований.
// Бронирование на целый день занимает локальные сутки расписания.
func bookingIntervals(eventType *domain.EventType, starts []time.Time, loc *time.Location) []domain.Interval {
	out := make([]domain.Interval, 0, len(starts))
	for _, start := range starts {
		if !eventType.IsFullDay() {
			out = append(out, domain.Interval{Start: start.UTC(), End: start.UTC().Add(eventType.Duration())})
			continue
		}

		y, m, d := start.In(loc).Date()
		out = append(out, domain.Interval{
			Start: time.Date(y, m, d, 0, 0, 0, 0, loc).UTC(),
			End:   time.Date(y, m, d+1, 0, 0, 0, 0, loc).UTC(),
		})
	}
	return out
}

func toBooking(b *domain.Booking) Booking {
	return Booking{
		ID:            b.ID,
		EventTypeID:   b.EventTypeID,
		UserID:        b.UserID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        string(b.Status),
		AttendeeName:  b.AttendeeName,
		AttendeeEmail: b.AttendeeEmail,
		Timezone:      b.Timezone,
		SeriesID:      b.SeriesID,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
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
