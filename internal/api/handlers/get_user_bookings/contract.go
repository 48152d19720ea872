package get_user_bookings

import (
	"context"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/bookings/models"
)

type BookingService interface {
	GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest, principal domain.Principal) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
