package bookings

import (
	"context"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/integrations/notifyservice"
	"github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserWithFilter(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	GetByRestaurantWithFilter(ctx context.Context, filter domain.RestaurantBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateStatusWithReason(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// RestaurantServiceClient интерфейс клиента для RestaurantService
type RestaurantServiceClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*restaurantservice.Restaurant, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	NotifyBookingConfirmed(ctx context.Context, event notifyservice.BookingEvent)
	NotifyBookingRejected(ctx context.Context, event notifyservice.BookingEvent)
	NotifyBookingCancelled(ctx context.Context, event notifyservice.BookingEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
