package get_booking

import (
	"context"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
