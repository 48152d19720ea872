package manage_closed_dates

import (
	"context"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/schedules/models"
)

type ScheduleService interface {
	AddClosedDate(ctx context.Context, restaurantID int64, req *models.AddClosedDateRequest, principal domain.Principal) (*models.ClosedDateResponse, error)
	BulkAddClosedDates(ctx context.Context, restaurantID int64, req *models.BulkAddClosedDatesRequest, principal domain.Principal) (*models.ClosedDateListResponse, error)
	RemoveClosedDate(ctx context.Context, restaurantID int64, rawDate string, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
