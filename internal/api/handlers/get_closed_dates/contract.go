package get_closed_dates

import (
	"context"

	"github.com/bitebooking/booking-engine/internal/service/schedules/models"
)

type ScheduleService interface {
	ListClosedDates(ctx context.Context, restaurantID int64) (*models.ClosedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
