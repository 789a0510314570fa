package validate_slots

import (
	"context"

	validateSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_slots"
)

type ValidateSlotsUseCase interface {
	Execute(ctx context.Context, req *validateSlots.Request) (*validateSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
