package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	reservationRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
)

// DefaultHoldTTL время жизни удержания, если оно не задано в конфигурации
const DefaultHoldTTL = 10 * time.Minute

// UseCase use case для временного удержания слота до оформления бронирования
type UseCase struct {
	eventTypeRepo   EventTypeRepository
	loader          SnapshotLoader
	reservationRepo ReservationRepository
	generator       *availability.Generator
	converter       availability.TimeZoneConverter
	timeProvider    TimeProvider
	logger          Logger
	holdTTL         time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventTypeRepo EventTypeRepository,
	loader SnapshotLoader,
	reservationRepo ReservationRepository,
	converter availability.TimeZoneConverter,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}
	return &UseCase{
		eventTypeRepo:   eventTypeRepo,
		loader:          loader,
		reservationRepo: reservationRepo,
		generator:       availability.NewGenerator(converter),
		converter:       converter,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		holdTTL:         holdTTL,
	}
}

// Execute удерживает слот, если он сейчас предлагается к бронированию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: user=%d, event_type=%d, start=%s, spots=%d",
		req.UserID, req.EventTypeID, req.StartTime.Format(time.RFC3339), req.Spots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}
	spots := req.Spots
	if spots == 0 {
		spots = 1
	}

	now := uc.timeProvider.Now()

	// 2. Получаем тип события с расписанием
	eventType, err := uc.getEventType(ctx, req.EventTypeID)
	if err != nil {
		return nil, err
	}
	if eventType.IsSingleCapacity() && spots > 1 {
		return nil, fmt.Errorf("%w: event type holds a single attendee per slot", ErrInvalidInput)
	}

	loc, err := uc.converter.Location(eventType.Schedule.Timezone)
	if err != nil {
		uc.logger.Error("ReserveSlot: schedule id=%d has bad timezone: %v", eventType.Schedule.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Загружаем источники на дату слота
	date := req.StartTime.In(loc)
	from, to := snapshot.DateRangeUTC(date, date, loc)
	snap, err := uc.loader.Load(ctx, eventType, from, to, now)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to load snapshot for event type id=%d: %v", eventType.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Проверяем, что слот предлагается и в нем хватает мест
	slot, err := uc.offeredSlot(eventType, req.StartTime, snap, now, loc, spots)
	if err != nil {
		return nil, err
	}

	// 5. Создаем удержание
	reservation := &domain.SlotReservation{
		ID:            uuid.NewString(),
		EventTypeID:   eventType.ID,
		UserID:        req.UserID,
		Start:         slot.Start,
		End:           slot.End,
		SpotsReserved: spots,
		Status:        domain.ReservationPending,
		ExpiresAt:     now.Add(uc.holdTTL),
	}

	if err := uc.reservationRepo.Create(ctx, reservation, now, eventType.IsSingleCapacity()); err != nil {
		if errors.Is(err, reservationRepo.ErrSlotHeld) {
			uc.logger.Warn("ReserveSlot: slot %s of event type id=%d is already held",
				slot.Start.Format(time.RFC3339), eventType.ID)
			return nil, fmt.Errorf("%w: slot is held by another invitee", ErrSlotNotAvailable)
		}
		uc.logger.Error("ReserveSlot: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("ReserveSlot: created reservation %s until %s",
		reservation.ID, reservation.ExpiresAt.Format(time.RFC3339))

	return &Response{
		ReservationID: reservation.ID,
		EventTypeID:   reservation.EventTypeID,
		Start:         reservation.Start,
		End:           reservation.End,
		Spots:         reservation.SpotsReserved,
		ExpiresAt:     reservation.ExpiresAt,
	}, nil
}

// Release снимает удержание
func (uc *UseCase) Release(ctx context.Context, req *ReleaseRequest) error {
	uc.logger.Info("ReleaseSlot: event_type=%d, reservation=%s", req.EventTypeID, req.ReservationID)

	if err := validateReleaseRequest(req); err != nil {
		uc.logger.Warn("ReleaseSlot: validation failed: %v", err)
		return err
	}

	if err := uc.reservationRepo.Release(ctx, req.EventTypeID, req.ReservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ReleaseSlot: reservation %s not found", req.ReservationID)
			return ErrReservationNotFound
		}
		uc.logger.Error("ReleaseSlot: failed to release reservation %s: %v", req.ReservationID, err)
		return fmt.Errorf("%w: failed to release reservation: %v", ErrInternal, err)
	}

	return nil
}

func (uc *UseCase) getEventType(ctx context.Context, id int64) (*domain.EventType, error) {
	eventType, err := uc.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventTypeRepo.ErrEventTypeNotFound) {
			uc.logger.Warn("ReserveSlot: event type id=%d not found", id)
			return nil, ErrEventTypeNotFound
		}
		if errors.Is(err, eventTypeRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get event type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}
	if !eventType.IsActive {
		return nil, ErrEventTypeNotFound
	}
	if eventType.Schedule == nil {
		return nil, ErrScheduleNotFound
	}
	return eventType, nil
}

// offeredSlot находит запрошенный слот среди сгенерированных на его дату
// и проверяет, что с учетом чужих удержаний в нем остается spots мест
func (uc *UseCase) offeredSlot(
	eventType *domain.EventType,
	start time.Time,
	snap *snapshot.Snapshot,
	now time.Time,
	loc *time.Location,
	spots int,
) (*domain.Slot, error) {
	date := start.In(loc)
	capacity, limited := eventType.Capacity()

	if eventType.IsFullDay() {
		reserved := availability.ReservedCountsByDate(snap.Reservations, loc, now)
		slots, err := uc.generator.GenerateFullDay(availability.FullDayParams{
			StartDate:            date,
			EndDate:              date,
			EventType:            eventType,
			Schedule:             eventType.Schedule,
			BookingCountsByDate:  availability.CountBookingsByDate(snap.Bookings, loc),
			ReservedCountsByDate: reserved,
			Now:                  now,
		})
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to generate full-day slots: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if len(slots) == 0 || !slots[0].IsAvailable {
			return nil, fmt.Errorf("%w: date %s is not offered", ErrSlotNotAvailable, availability.DateKey(date))
		}
		used := slots[0].CurrentBookings + reserved[availability.DateKey(date)]
		if limited && used+spots > capacity {
			return nil, fmt.Errorf("%w: %d of %d spots taken", ErrSlotNotAvailable, used, capacity)
		}
		return &slots[0], nil
	}

	slots, err := uc.generator.Generate(availability.GenerateParams{
		StartDate: date,
		EndDate:   date,
		EventType: eventType,
		Schedule:  eventType.Schedule,
		Conflicts: availability.NewConflictIndex(eventType, snap.Bookings, snap.BusySlots, snap.Reservations, now),
		Now:       now,
	})
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for i := range slots {
		if !slots[i].Start.Equal(start) {
			continue
		}
		slot := &slots[i]
		if limited && !eventType.IsSingleCapacity() {
			used := slot.CurrentBookings + heldSpots(snap.Reservations, slot.Start, slot.End, now)
			if used+spots > capacity {
				return nil, fmt.Errorf("%w: %d of %d spots taken", ErrSlotNotAvailable, used, capacity)
			}
		}
		return slot, nil
	}

	return nil, fmt.Errorf("%w: %s is not offered", ErrSlotNotAvailable, start.UTC().Format(time.RFC3339))
}

// heldSpots суммирует места активных удержаний, пересекающих [start, end)
func heldSpots(holds []domain.SlotReservation, start, end, now time.Time) int {
	total := 0
	for _, h := range holds {
		if !h.IsActive(now) || !h.Interval().Overlaps(start, end) {
			continue
		}
		if h.SpotsReserved <= 0 {
			total++
			continue
		}
		total += h.SpotsReserved
	}
	return total
}
