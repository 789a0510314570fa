package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgMissingDates       = "startDate и endDate обязательны"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams      = "некорректные параметры запроса"
	msgRangeTooLarge      = "слишком большой диапазон дат"
	msgEventTypeNotFound  = "тип события не найден"
	msgScheduleNotFound   = "расписание типа события не найдено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/event-types/{eventTypeId}/slots
// Query params: startDate, endDate (required, YYYY-MM-DD), timezone (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	eventTypeID, err := strconv.ParseInt(vars["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /event-types/{id}/slots - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	query := r.URL.Query()
	startDateStr, endDateStr := query.Get("startDate"), query.Get("endDate")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /event-types/{id}/slots - Missing dates: event_type_id=%d", eventTypeID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(eventTypeID, startDateStr, endDateStr, query.Get("timezone"))
	if err != nil {
		h.logger.Warn("GET /event-types/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEventTypeNotFound):
			h.logger.Warn("GET /event-types/{id}/slots - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, getAvailableSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /event-types/{id}/slots - Schedule not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getAvailableSlots.ErrRangeTooLarge):
			h.logger.Warn("GET /event-types/{id}/slots - Range too large: event_type_id=%d, start=%s, end=%s",
				eventTypeID, startDateStr, endDateStr)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /event-types/{id}/slots - Invalid parameters: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /event-types/{id}/slots - Failed to get slots: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /event-types/{id}/slots - Slots retrieved successfully: event_type_id=%d, days=%d, degraded=%v",
		eventTypeID, len(result.Days), result.Degraded)
	handlers.RespondJSON(w, http.StatusOK, response)
}
