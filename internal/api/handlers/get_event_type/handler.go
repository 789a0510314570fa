package get_event_type

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgEventTypeNotFound  = "тип события не найден"
	msgScheduleNotFound   = "расписание типа события не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/event-types/{eventTypeId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /event-types/{id} - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	result, err := h.service.GetEventType(r.Context(), eventTypeID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrEventTypeNotFound):
			h.logger.Warn("GET /event-types/{id} - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("GET /event-types/{id} - Schedule not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		default:
			h.logger.Error("GET /event-types/{id} - Failed to get event type: event_type_id=%d, error=%v",
				eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /event-types/{id} - Event type retrieved successfully: event_type_id=%d", eventTypeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
