package delete_date_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedules/models"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEventTypeNotFound  = "тип события не найден"
	msgOverrideNotFound   = "исключение на дату не найдено"
	msgForbidden          = "доступ запрещен"
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

// Handle DELETE /api/v1/event-types/{eventTypeId}/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventTypeID, err := strconv.ParseInt(vars["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /event-types/{id}/overrides/{date} - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /event-types/{id}/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	date := vars["date"]
	err = h.service.DeleteDateOverride(r.Context(), &models.DeleteOverrideRequest{
		UserID:      userID,
		EventTypeID: eventTypeID,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("DELETE /event-types/{id}/overrides/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, schedules.ErrEventTypeNotFound):
			h.logger.Warn("DELETE /event-types/{id}/overrides/{date} - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, schedules.ErrOverrideNotFound):
			h.logger.Warn("DELETE /event-types/{id}/overrides/{date} - Override not found: event_type_id=%d, date=%s",
				eventTypeID, date)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("DELETE /event-types/{id}/overrides/{date} - Access denied: event_type_id=%d, user_id=%d",
				eventTypeID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /event-types/{id}/overrides/{date} - Failed to delete override: event_type_id=%d, error=%v",
				eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /event-types/{id}/overrides/{date} - Override deleted: event_type_id=%d, date=%s", eventTypeID, date)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
