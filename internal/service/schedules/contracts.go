package schedules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventTypeRepository интерфейс репозитория типов событий и расписаний
type EventTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EventType, error)
	UpsertDateOverride(ctx context.Context, scheduleID int64, override domain.DateOverride) error
	DeleteDateOverride(ctx context.Context, scheduleID int64, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
