package upsert_date_override

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные исключения"
	msgEventTypeNotFound  = "тип события не найден"
	msgScheduleNotFound   = "расписание типа события не найдено"
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

// Handle PUT /api/v1/event-types/{eventTypeId}/overrides
// Исключение на дату полностью заменяет недельные окна этой даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /event-types/{id}/overrides - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /event-types/{id}/overrides - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /event-types/{id}/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.EventTypeID = eventTypeID

	// Сервис сам проверит права владельца
	result, err := h.service.UpsertDateOverride(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrEventTypeNotFound):
			h.logger.Warn("PUT /event-types/{id}/overrides - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("PUT /event-types/{id}/overrides - Schedule not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("PUT /event-types/{id}/overrides - Access denied: event_type_id=%d, user_id=%d",
				eventTypeID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /event-types/{id}/overrides - Invalid data: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /event-types/{id}/overrides - Failed to save override: event_type_id=%d, error=%v",
				eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /event-types/{id}/overrides - Override saved: event_type_id=%d, date=%s", eventTypeID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
