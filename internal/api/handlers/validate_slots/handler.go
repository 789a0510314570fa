package validate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	validateSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_slots"
)

const (
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgInvalidParams      = "некорректные параметры запроса"
	msgEventTypeNotFound  = "тип события не найден"
	msgScheduleNotFound   = "расписание типа события не найдено"
)

type Handler struct {
	useCase ValidateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ValidateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-types/{eventTypeId}/slots/validate
// Конфликты возвращаются с кодом 200: проверка сама по себе успешна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := strconv.ParseInt(mux.Vars(r)["eventTypeId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /event-types/{id}/slots/validate - Invalid event type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	var req ValidateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-types/{id}/slots/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(eventTypeID)
	if err != nil {
		h.logger.Warn("POST /event-types/{id}/slots/validate - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateSlots.ErrEventTypeNotFound):
			h.logger.Warn("POST /event-types/{id}/slots/validate - Event type not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, validateSlots.ErrScheduleNotFound):
			h.logger.Warn("POST /event-types/{id}/slots/validate - Schedule not found: event_type_id=%d", eventTypeID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, validateSlots.ErrInvalidInput):
			h.logger.Warn("POST /event-types/{id}/slots/validate - Invalid parameters: event_type_id=%d, error=%v", eventTypeID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /event-types/{id}/slots/validate - Failed to validate slots: event_type_id=%d, error=%v",
				eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-types/{id}/slots/validate - Slots validated: event_type_id=%d, requested=%d, conflicts=%d",
		eventTypeID, result.Result.Requested, len(result.Result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
