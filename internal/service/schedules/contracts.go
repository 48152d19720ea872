package schedules

import (
	"context"
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
)

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetByRestaurantAndDay(ctx context.Context, restaurantID int64, day time.Weekday) (*domain.WeeklySchedule, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.WeeklySchedule, error)
	Upsert(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	DeleteByDay(ctx context.Context, restaurantID int64, day time.Weekday) error
}

// ClosedDateRepository интерфейс репозитория дат закрытия
type ClosedDateRepository interface {
	ListUpcoming(ctx context.Context, restaurantID int64, from time.Time) ([]*domain.ClosedDate, error)
	Create(ctx context.Context, closedDate *domain.ClosedDate) (*domain.ClosedDate, error)
	Delete(ctx context.Context, restaurantID int64, date time.Time) error
}

// RestaurantServiceClient интерфейс клиента для RestaurantService
type RestaurantServiceClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*restaurantservice.Restaurant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени, выделен для тестов
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
