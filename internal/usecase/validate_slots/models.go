package validate_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на проверку набора времен начала
type Request struct {
	EventTypeID int64
	StartTimes  []time.Time // Запрошенные моменты начала, порядок сохраняется в ответе
	Timezone    string      // Зона показа альтернатив (опционально)

	// ReservationID собственное удержание приглашенного, оно не считается конфликтом
	ReservationID string
}

// Response результат проверки
type Response struct {
	EventTypeID int64
	Timezone    string
	Result      *domain.ValidationResult
	Degraded    []string
}
