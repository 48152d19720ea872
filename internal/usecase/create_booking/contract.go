package create_booking

import (
	"context"
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/integrations/notifyservice"
	"github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// ListForDate получает активные бронирования с блокировкой строк внутри транзакции
	ListForDate(ctx context.Context, restaurantID int64, date time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetByRestaurantAndDay(ctx context.Context, restaurantID int64, day time.Weekday) (*domain.WeeklySchedule, error)
}

// ClosedDateRepository интерфейс репозитория дат закрытия
type ClosedDateRepository interface {
	GetByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) (*domain.ClosedDate, error)
}

// RestaurantServiceClient интерфейс клиента для RestaurantService
type RestaurantServiceClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*restaurantservice.Restaurant, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	NotifyBookingCreated(ctx context.Context, event notifyservice.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
