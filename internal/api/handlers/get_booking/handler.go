package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidTimezone  = "некорректная временная зона"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	zones   ZoneLoader
	logger  Logger
}

func NewHandler(service BookingService, zones ZoneLoader, logger Logger) *Handler {
	return &Handler{
		service: service,
		zones:   zones,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Query params: timezone (опционально, по умолчанию зона, в которой бронировал участник)
// Доступно участнику бронирования и владельцу типа события
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	requestedTZ := r.URL.Query().Get("timezone")
	if requestedTZ != "" {
		if _, err := h.zones.Location(requestedTZ); err != nil {
			h.logger.Warn("GET /bookings/{id} - Invalid timezone: booking_id=%d, timezone=%q", bookingID, requestedTZ)
			handlers.RespondBadRequest(w, msgInvalidTimezone)
			return
		}
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Neither attendee nor event type owner: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	displayTZ := requestedTZ
	if displayTZ == "" {
		displayTZ = booking.Timezone
	}
	loc, err := h.zones.Location(displayTZ)
	if err != nil {
		// Сохранённая зона больше не резолвится: показываем UTC
		h.logger.Warn("GET /bookings/{id} - Stored timezone not loadable, falling back to UTC: booking_id=%d, timezone=%q",
			bookingID, displayTZ)
		loc, err = h.zones.Location("UTC")
		if err != nil {
			h.logger.Error("GET /bookings/{id} - Failed to load UTC: %v", err)
			handlers.RespondInternalError(w)
			return
		}
	}

	resp, err := ToBookingDetails(booking, loc)
	if err != nil {
		h.logger.Error("GET /bookings/{id} - Failed to build response: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	if booking.SeriesID != nil {
		h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%d, user_id=%d, series_id=%s, attendee=%t",
			bookingID, userID, *booking.SeriesID, booking.UserID == userID)
	} else {
		h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%d, user_id=%d, attendee=%t",
			bookingID, userID, booking.UserID == userID)
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
