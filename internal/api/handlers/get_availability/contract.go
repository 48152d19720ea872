package get_availability

import (
	"context"

	getAvailability "github.com/bitebooking/booking-engine/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
	ExecuteWeek(ctx context.Context, req *getAvailability.WeekRequest) (*getAvailability.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
