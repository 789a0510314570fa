package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
}

// SnapshotLoader загружает блокирующие интервалы за диапазон
// Внутри транзакции бронирования читаются с блокировкой строк
type SnapshotLoader interface {
	Load(ctx context.Context, eventType *domain.EventType, from, to, now time.Time) (*snapshot.Snapshot, error)
}

// ReservationRepository интерфейс хранилища удержаний
type ReservationRepository interface {
	Release(ctx context.Context, eventTypeID int64, id string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики движка доступности
type Metrics interface {
	IncConflict(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
