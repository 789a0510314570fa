package get_event_type_bookings

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
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidParams      = "некорректные параметры запроса"
	msgEventTypeNotFound  = "тип события не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/event-types/{eventTypeId}/bookings
// Query params: from, to (RFC3339), status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /event-types/{id}/bookings - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /event-types/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(eventTypeID, userID,
		query.Get("from"), query.Get("to"), query.Get("status"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /event-types/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что пользователь владелец типа события
	result, err := h.service.GetEventTypeBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /event-types/{id}/bookings - Access denied: event_type_id=%d, user_id=%d",
				eventTypeID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrEventTypeNotFound):
			h.logger.Warn("GET /event-types/{id}/bookings - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /event-types/{id}/bookings - Invalid filter: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /event-types/{id}/bookings - Failed to get bookings: event_type_id=%d, error=%v",
				eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /event-types/{id}/bookings - Bookings retrieved successfully: event_type_id=%d, count=%d",
		eventTypeID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
