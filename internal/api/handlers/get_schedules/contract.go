package get_schedules

import (
	"context"

	"github.com/bitebooking/booking-engine/internal/service/schedules/models"
)

type ScheduleService interface {
	ListSchedules(ctx context.Context, restaurantID int64) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
