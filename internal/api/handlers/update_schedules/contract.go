package update_schedules

import (
	"context"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/schedules/models"
)

type ScheduleService interface {
	UpsertSchedule(ctx context.Context, restaurantID int64, req *models.UpsertScheduleRequest, principal domain.Principal) (*models.ScheduleResponse, error)
	BulkUpsertSchedules(ctx context.Context, restaurantID int64, req *models.BulkUpsertSchedulesRequest, principal domain.Principal) (*models.ScheduleListResponse, error)
	DeleteScheduleDay(ctx context.Context, restaurantID int64, dayOfWeek string, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
