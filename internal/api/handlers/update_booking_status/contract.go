package update_booking_status

import (
	"context"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, bookingID int64, principal domain.Principal) error
	Reject(ctx context.Context, bookingID int64, req *models.RejectBookingRequest, principal domain.Principal) error
	Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest, principal domain.Principal) error
	Complete(ctx context.Context, bookingID int64, principal domain.Principal) error
	MarkNoShow(ctx context.Context, bookingID int64, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
