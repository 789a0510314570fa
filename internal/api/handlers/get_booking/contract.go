package get_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error)
}

// ZoneLoader резолвит IANA зону для отображения времени бронирования
type ZoneLoader interface {
	Location(zoneID string) (*time.Location, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
