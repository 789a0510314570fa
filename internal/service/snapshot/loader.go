package snapshot

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Источники, для которых допускается деградация
const (
	SourceCalendar     = "calendar"
	SourceReservations = "reservations"
)

// Snapshot снимок блокирующих интервалов для одного прохода расчёта доступности
type Snapshot struct {
	Bookings     []*domain.Booking
	BusySlots    []domain.CalendarBusySlot
	Reservations []domain.SlotReservation

	// Degraded источники, которые не ответили и считаются пустыми
	Degraded []string
}

// Loader параллельно читает бронирования, занятость календаря и удержания
type Loader struct {
	bookingRepo     BookingRepository
	eventTypeRepo   EventTypeRepository
	calendarClient  CalendarClient
	reservationRepo ReservationRepository
	metrics         Metrics
	logger          Logger
}

// NewLoader создает загрузчик снимков
// calendarClient и reservationRepo могут быть nil - тогда источник считается пустым
func NewLoader(
	bookingRepo BookingRepository,
	eventTypeRepo EventTypeRepository,
	calendarClient CalendarClient,
	reservationRepo ReservationRepository,
	metrics Metrics,
	logger Logger,
) *Loader {
	return &Loader{
		bookingRepo:     bookingRepo,
		eventTypeRepo:   eventTypeRepo,
		calendarClient:  calendarClient,
		reservationRepo: reservationRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Load читает источники, пересекающиеся с [from, to), расширенным на буферы типа события.
// Ошибка чтения бронирований прерывает загрузку; календарь и удержания деградируют в пустые списки.
// Внутри транзакции бронирования читаются с блокировкой строк.
func (l *Loader) Load(ctx context.Context, eventType *domain.EventType, from, to, now time.Time) (*Snapshot, error) {
	pad := 2 * (eventType.BufferBefore() + eventType.BufferAfter())
	from, to = from.Add(-pad), to.Add(pad)

	snap := &Snapshot{
		BusySlots:    []domain.CalendarBusySlot{},
		Reservations: []domain.SlotReservation{},
	}
	var calendarFailed, reservationsFailed bool

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		bookings, err := l.loadBookings(gctx, eventType, from, to)
		if err != nil {
			return err
		}
		snap.Bookings = bookings
		return nil
	})

	if l.calendarClient != nil {
		g.Go(func() error {
			busy, err := l.calendarClient.GetBusyTimesWithGracefulDegradation(gctx, eventType.OwnerID, from, to)
			if err != nil {
				l.logger.Warn("Load: calendar busy times unavailable for owner=%d, treating as free: %v", eventType.OwnerID, err)
				calendarFailed = true
				return nil
			}
			snap.BusySlots = busy
			return nil
		})
	}

	if l.reservationRepo != nil {
		g.Go(func() error {
			holds, err := l.reservationRepo.GetActive(gctx, eventType.ID, from, to, now)
			if err != nil {
				l.logger.Warn("Load: reservations unavailable for event_type=%d, ignoring holds: %v", eventType.ID, err)
				reservationsFailed = true
				return nil
			}
			snap.Reservations = holds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if calendarFailed {
		snap.Degraded = append(snap.Degraded, SourceCalendar)
		l.metrics.IncDegraded(SourceCalendar)
	}
	if reservationsFailed {
		snap.Degraded = append(snap.Degraded, SourceReservations)
		l.metrics.IncDegraded(SourceReservations)
	}

	return snap, nil
}

// loadBookings читает бронирования всех типов событий, разделяющих расписание
func (l *Loader) loadBookings(ctx context.Context, eventType *domain.EventType, from, to time.Time) ([]*domain.Booking, error) {
	ids, err := l.eventTypeRepo.GetEventTypeIDsBySchedule(ctx, eventType.ScheduleID)
	if err != nil {
		l.logger.Error("Load: failed to get event types of schedule=%d: %v", eventType.ScheduleID, err)
		return nil, fmt.Errorf("%w: schedule event types: %v", ErrLoadBookings, err)
	}
	if !containsID(ids, eventType.ID) {
		ids = append(ids, eventType.ID)
	}

	bookings, err := l.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		EventTypeIDs: ids,
		From:         &from,
		To:           &to,
	})
	if err != nil {
		l.logger.Error("Load: failed to get bookings for event_types=%v: %v", ids, err)
		return nil, fmt.Errorf("%w: %w", ErrLoadBookings, err)
	}

	return bookings, nil
}

// DateRangeUTC возвращает UTC-границы локальных суток [startDate, endDate] в зоне loc
func DateRangeUTC(startDate, endDate time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := startDate.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	y, m, d = endDate.Date()
	to := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return from.UTC(), to.UTC()
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
