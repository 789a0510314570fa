package validate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/snapshot"
)

// EventTypeRepository интерфейс репозитория типов событий
type EventTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
}

// SnapshotLoader загружает блокирующие интервалы за диапазон
type SnapshotLoader interface {
	Load(ctx context.Context, eventType *domain.EventType, from, to, now time.Time) (*snapshot.Snapshot, error)
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
