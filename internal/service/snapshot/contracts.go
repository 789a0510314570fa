package snapshot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetEventTypeIDsBySchedule(ctx context.Context, scheduleID int64) ([]int64, error)
}

// CalendarClient источник занятости внешних календарей
type CalendarClient interface {
	GetBusyTimesWithGracefulDegradation(ctx context.Context, ownerID int64, start, end time.Time) ([]domain.CalendarBusySlot, error)
}

// ReservationRepository источник временных удержаний слотов
type ReservationRepository interface {
	GetActive(ctx context.Context, eventTypeID int64, from, to, now time.Time) ([]domain.SlotReservation, error)
}

// Metrics счётчик деградировавших источников
type Metrics interface {
	IncDegraded(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
