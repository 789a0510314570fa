package reservation

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// record хранимое представление удержания.
// Поля start_ms и end_ms читаются Lua-скриптом при проверке пересечений.
type record struct {
	ID          string `json:"id"`
	EventTypeID int64  `json:"event_type_id"`
	UserID      int64  `json:"user_id"`
	StartMs     int64  `json:"start_ms"`
	EndMs       int64  `json:"end_ms"`
	Spots       int    `json:"spots"`
	ExpiresMs   int64  `json:"expires_ms"`
}

func toRecord(r *domain.SlotReservation) record {
	return record{
		ID:          r.ID,
		EventTypeID: r.EventTypeID,
		UserID:      r.UserID,
		StartMs:     r.Start.UnixMilli(),
		EndMs:       r.End.UnixMilli(),
		Spots:       r.SpotsReserved,
		ExpiresMs:   r.ExpiresAt.UnixMilli(),
	}
}

func (rec record) toDomain() domain.SlotReservation {
	return domain.SlotReservation{
		ID:            rec.ID,
		EventTypeID:   rec.EventTypeID,
		UserID:        rec.UserID,
		Start:         time.UnixMilli(rec.StartMs).UTC(),
		End:           time.UnixMilli(rec.EndMs).UTC(),
		SpotsReserved: rec.Spots,
		Status:        domain.ReservationPending,
		ExpiresAt:     time.UnixMilli(rec.ExpiresMs).UTC(),
	}
}
