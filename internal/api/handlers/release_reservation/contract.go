package release_reservation

import (
	"context"

	reserveSlot "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_slot"
)

type ReleaseUseCase interface {
	Release(ctx context.Context, req *reserveSlot.ReleaseRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
