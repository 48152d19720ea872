package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	closedDateRepo "github.com/bitebooking/booking-engine/internal/infra/storage/closeddate"
	scheduleRepo "github.com/bitebooking/booking-engine/internal/infra/storage/schedule"
	"github.com/bitebooking/booking-engine/internal/integrations/notifyservice"
	restaurantClient "github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	scheduleRepo     ScheduleRepository
	closedDateRepo   ClosedDateRepository
	restaurantClient RestaurantServiceClient
	notifyClient     NotifyServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	closedDateRepo ClosedDateRepository,
	restaurantClient RestaurantServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		closedDateRepo:   closedDateRepo,
		restaurantClient: restaurantClient,
		notifyClient:     notifyClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени, используется в тестах
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
//
// Проверка вместимости и вставка выполняются в сериализуемой транзакции:
// чтение активных броней блокирует строки (FOR UPDATE), поэтому два
// конкурентных запроса на последние места не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, restaurant=%d, date=%s, time=%s, people=%d",
		req.UserID, req.RestaurantID, req.Date.Format(domain.DateFormat), req.Time, req.NumPeople)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем ресторан
	restaurant, err := uc.restaurantClient.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantClient.ErrRestaurantNotFound) {
			uc.logger.Warn("CreateBooking: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Дата закрытия перекрывает любое расписание
		closedDate, err := uc.closedDateRepo.GetByRestaurantAndDate(txCtx, req.RestaurantID, req.Date)
		if err != nil && !errors.Is(err, closedDateRepo.ErrClosedDateNotFound) {
			uc.logger.Error("CreateBooking: failed to check closed date: %v", err)
			return fmt.Errorf("%w: failed to check closed date: %v", ErrInternal, err)
		}
		if closedDate != nil {
			uc.logger.Warn("CreateBooking: restaurant=%d is closed on %s: %s",
				req.RestaurantID, req.Date.Format(domain.DateFormat), closedDate.Reason)
			return ErrRestaurantClosed
		}

		// 4.2. Расписание на день недели с fallback на часы работы ресторана
		schedule, scheduleExists, err := uc.scheduleForDay(txCtx, restaurant, req.Date.Weekday())
		if err != nil {
			return err
		}

		if !schedule.IsOpen {
			uc.logger.Warn("CreateBooking: restaurant=%d is closed on %s",
				req.RestaurantID, domain.DayOfWeekName(req.Date.Weekday()))
			return ErrRestaurantClosed
		}

		if !schedule.AcceptsOnlineBookings {
			uc.logger.Warn("CreateBooking: restaurant=%d does not accept online bookings on %s",
				req.RestaurantID, domain.DayOfWeekName(req.Date.Weekday()))
			return ErrOnlineBookingsDisabled
		}

		// 4.3. Валидация даты с учетом горизонта бронирования
		if err := validateDate(req.Date, now, schedule.MaxAdvanceDays, scheduleExists); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 4.4. Валидация времени бронирования (minAdvanceHours)
		if err := validateBookingTime(req.Date, req.Time, now, schedule.MinAdvanceHours); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 4.5. Время должно совпадать с одним из слотов дня
		slots := generateTimeSlots(schedule)
		if err := validateSlotTime(slots, req.Time); err != nil {
			uc.logger.Warn("CreateBooking: time %s does not match any slot for restaurant=%d", req.Time, req.RestaurantID)
			return err
		}

		// 4.6. Получаем активные брони на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.ListForDate(txCtx, req.RestaurantID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 4.7. Проверяем вместимость слота
		committed := domain.CommittedPeople(bookings, req.Time)
		available := domain.RemainingCapacity(schedule.MaxCapacityPerSlot, committed)

		if available < req.NumPeople {
			uc.logger.Warn("CreateBooking: capacity exceeded for restaurant=%d, time=%s: %d available, %d requested",
				req.RestaurantID, req.Time, available, req.NumPeople)
			return &CapacityExceededError{Available: available, Requested: req.NumPeople}
		}

		uc.logger.Info("CreateBooking: slot available for restaurant=%d, time=%s: %d/%d seats taken",
			req.RestaurantID, req.Time, committed, schedule.MaxCapacityPerSlot)

		// 4.8. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			RestaurantID:    req.RestaurantID,
			UserID:          req.UserID,
			BookingDate:     req.Date,
			BookingTime:     req.Time,
			NumPeople:       req.NumPeople,
			Status:          domain.StatusPending,
			Observations:    req.Observations,
			SpecialRequests: req.SpecialRequests,
			ContactName:     req.ContactName,
			ContactPhone:    req.ContactPhone,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Уведомляем ресторан о новой брони. Отправка не влияет на результат
	uc.notifyClient.NotifyBookingCreated(ctx, notifyservice.BookingEvent{
		BookingID:    result.ID,
		RestaurantID: result.RestaurantID,
		UserID:       result.UserID,
		BookingDate:  result.BookingDate.Format(domain.DateFormat),
		BookingTime:  result.BookingTime.String(),
		NumPeople:    result.NumPeople,
	})

	return &Response{
		ID:              result.ID,
		RestaurantID:    result.RestaurantID,
		UserID:          result.UserID,
		BookingDate:     result.BookingDate,
		BookingTime:     result.BookingTime,
		NumPeople:       result.NumPeople,
		Status:          string(result.Status),
		Observations:    result.Observations,
		SpecialRequests: result.SpecialRequests,
		ContactName:     result.ContactName,
		ContactPhone:    result.ContactPhone,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// scheduleForDay возвращает расписание на день недели.
// Если день не настроен, строит виртуальное расписание из часов работы
// ресторана с дефолтными параметрами слотов.
func (uc *UseCase) scheduleForDay(ctx context.Context, restaurant *restaurantClient.Restaurant, day time.Weekday) (*domain.WeeklySchedule, bool, error) {
	schedule, err := uc.scheduleRepo.GetByRestaurantAndDay(ctx, restaurant.ID, day)
	if err == nil {
		return schedule, true, nil
	}

	if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("CreateBooking: failed to get schedule for restaurant=%d: %v", restaurant.ID, err)
		return nil, false, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: no schedule for restaurant=%d on %s, using restaurant hours", restaurant.ID, domain.DayOfWeekName(day))

	fallback := &domain.WeeklySchedule{
		RestaurantID:          restaurant.ID,
		DayOfWeek:             day,
		IsOpen:                restaurant.OpeningTime != nil && restaurant.ClosingTime != nil,
		OpenTime:              restaurant.OpeningTime,
		CloseTime:             restaurant.ClosingTime,
		MaxCapacityPerSlot:    domain.DefaultMaxCapacityPerSlot,
		SlotIntervalMinutes:   domain.DefaultSlotIntervalMinutes,
		MinAdvanceHours:       domain.DefaultMinAdvanceHours,
		MaxAdvanceDays:        domain.DefaultMaxAdvanceDays,
		AcceptsOnlineBookings: true,
	}

	return fallback, false, nil
}
