package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	closedDateRepo "github.com/bitebooking/booking-engine/internal/infra/storage/closeddate"
	scheduleRepo "github.com/bitebooking/booking-engine/internal/infra/storage/schedule"
	restaurantClient "github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
)

// Пользовательские сообщения о причинах закрытия
const (
	msgClosed           = "Cerrado"
	msgClosedOnWeekday  = "Cerrado los %s"
	msgNoOnlineBookings = "Este restaurante no acepta reservas online"
)

// UseCase use case для получения доступных слотов ресторана.
//
// Приоритет источников:
//  1. Дата закрытия перекрывает всё - ресторан закрыт
//  2. Недельное расписание задаёт окна и параметры слотов
//  3. Без расписания используются часы работы ресторана с дефолтами
type UseCase struct {
	bookingRepo      BookingRepository
	scheduleRepo     ScheduleRepository
	closedDateRepo   ClosedDateRepository
	restaurantClient RestaurantServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	closedDateRepo ClosedDateRepository,
	restaurantClient RestaurantServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		closedDateRepo:   closedDateRepo,
		restaurantClient: restaurantClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени, используется в тестах
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступности на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: restaurant=%d, date=%s", req.RestaurantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата в прошлом не имеет доступности
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем ресторан
	restaurant, err := uc.restaurantClient.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantClient.ErrRestaurantNotFound) {
			uc.logger.Warn("GetAvailability: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("GetAvailability: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	return uc.buildDay(ctx, restaurant, req.Date, now, normalizeNumPeople(req.NumPeople), true)
}

// ExecuteWeek выполняет use case получения доступности на семь дней подряд
func (uc *UseCase) ExecuteWeek(ctx context.Context, req *WeekRequest) (*WeekResponse, error) {
	if err := validateWeekRequest(req); err != nil {
		uc.logger.Warn("GetAvailabilityWeek: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	if isDateInPast(startDate, now) {
		uc.logger.Warn("GetAvailabilityWeek: start date %s is in the past", startDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	uc.logger.Info("GetAvailabilityWeek: restaurant=%d, start=%s", req.RestaurantID, startDate.Format(domain.DateFormat))

	restaurant, err := uc.restaurantClient.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantClient.ErrRestaurantNotFound) {
			uc.logger.Warn("GetAvailabilityWeek: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("GetAvailabilityWeek: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	numPeople := normalizeNumPeople(req.NumPeople)

	days := make([]Response, 0, 7)
	for i := 0; i < 7; i++ {
		date := startDate.AddDate(0, 0, i)

		// Дни за горизонтом бронирования приходят пустыми, без ошибки
		day, err := uc.buildDay(ctx, restaurant, date, now, numPeople, false)
		if err != nil {
			return nil, err
		}
		days = append(days, *day)
	}

	return &WeekResponse{
		RestaurantID: req.RestaurantID,
		StartDate:    startDate,
		Days:         days,
	}, nil
}

// buildDay собирает доступность на один день.
// strictBounds управляет поведением за горизонтом maxAdvanceDays: ошибка
// для одиночного запроса, пустой день для недельного.
func (uc *UseCase) buildDay(ctx context.Context, restaurant *restaurantClient.Restaurant, date time.Time, now time.Time, numPeople int, strictBounds bool) (*Response, error) {
	resp := &Response{
		RestaurantID: restaurant.ID,
		Date:         date,
		Slots:        []Slot{},
	}

	// 1. Дата закрытия перекрывает любое расписание
	closedDate, err := uc.closedDateRepo.GetByRestaurantAndDate(ctx, restaurant.ID, date)
	if err != nil && !errors.Is(err, closedDateRepo.ErrClosedDateNotFound) {
		uc.logger.Error("GetAvailability: failed to check closed date for restaurant=%d: %v", restaurant.ID, err)
		return nil, fmt.Errorf("%w: failed to check closed date: %v", ErrInternal, err)
	}
	if closedDate != nil {
		reason := closedDate.Reason
		if reason == "" {
			reason = msgClosed
		}
		uc.logger.Info("GetAvailability: restaurant=%d is closed on %s: %s", restaurant.ID, date.Format(domain.DateFormat), reason)
		resp.Reason = reason
		return resp, nil
	}

	// 2. Расписание на день недели, с fallback на часы работы ресторана
	schedule, scheduleExists, err := uc.scheduleForDay(ctx, restaurant, date.Weekday())
	if err != nil {
		return nil, err
	}

	if !schedule.IsOpen {
		resp.Reason = fmt.Sprintf(msgClosedOnWeekday, domain.SpanishDayName(date.Weekday()))
		uc.logger.Info("GetAvailability: restaurant=%d is closed on %s", restaurant.ID, domain.DayOfWeekName(date.Weekday()))
		return resp, nil
	}

	resp.IsOpen = true

	if !schedule.AcceptsOnlineBookings {
		resp.Reason = msgNoOnlineBookings
		uc.logger.Info("GetAvailability: restaurant=%d does not accept online bookings on %s", restaurant.ID, domain.DayOfWeekName(date.Weekday()))
		return resp, nil
	}

	// 3. Горизонт бронирования проверяется только при настроенном расписании
	if scheduleExists && isBeyondAdvanceLimit(date, now, schedule.MaxAdvanceDays) {
		if strictBounds {
			uc.logger.Warn("GetAvailability: date %s is beyond %d days for restaurant=%d", date.Format(domain.DateFormat), schedule.MaxAdvanceDays, restaurant.ID)
			return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, schedule.MaxAdvanceDays)
		}
		return resp, nil
	}

	// 4. Генерируем слоты по окнам расписания
	slots := generateTimeSlots(schedule)

	// 5. На сегодня убираем слоты ближе minAdvanceHours
	if isSameDay(date, now) {
		slots = filterSameDaySlots(slots, now, schedule.MinAdvanceHours)
	}

	// 6. Вычисляем занятость по активным броням
	bookings, err := uc.bookingRepo.ListForDate(ctx, restaurant.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for restaurant=%d: %v", restaurant.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots = applyCapacity(slots, bookings, numPeople)

	resp.Slots = make([]Slot, len(slots))
	for i, slot := range slots {
		resp.Slots[i] = Slot{
			Time:              slot.Time,
			Period:            string(slot.Period),
			MaxCapacity:       slot.MaxCapacity,
			AvailableCapacity: slot.AvailableCapacity,
			IsAvailable:       slot.IsAvailable,
		}
	}

	uc.logger.Info("GetAvailability: generated %d slots for restaurant=%d, date=%s", len(resp.Slots), restaurant.ID, date.Format(domain.DateFormat))
	return resp, nil
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
		uc.logger.Error("GetAvailability: failed to get schedule for restaurant=%d: %v", restaurant.ID, err)
		return nil, false, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: no schedule for restaurant=%d on %s, using restaurant hours", restaurant.ID, domain.DayOfWeekName(day))

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
