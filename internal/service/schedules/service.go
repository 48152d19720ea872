package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	closedDateRepo "github.com/bitebooking/booking-engine/internal/infra/storage/closeddate"
	scheduleRepo "github.com/bitebooking/booking-engine/internal/infra/storage/schedule"
	restaurantClient "github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
	"github.com/bitebooking/booking-engine/internal/service/schedules/models"
)

// Service сервис для управления недельным расписанием и датами закрытия.
// Чтение публично, запись доступна владельцу ресторана и администратору.
type Service struct {
	scheduleRepo     ScheduleRepository
	closedDateRepo   ClosedDateRepository
	restaurantClient RestaurantServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	closedDateRepo ClosedDateRepository,
	restaurantClient RestaurantServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:     scheduleRepo,
		closedDateRepo:   closedDateRepo,
		restaurantClient: restaurantClient,
		txManager:        txManager,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// ListSchedules получает недельное расписание ресторана
// Публичный метод, авторизация не требуется
func (s *Service) ListSchedules(ctx context.Context, restaurantID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("ListSchedules: fetching schedules for restaurant=%d", restaurantID)

	schedules, err := s.scheduleRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error("ListSchedules: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: ListSchedules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSchedules: successfully fetched %d schedules for restaurant=%d", len(schedules), restaurantID)
	return models.FromDomainScheduleList(schedules), nil
}

// UpsertSchedule создает или обновляет расписание на день недели
// Доступно только владельцу ресторана и администратору
func (s *Service) UpsertSchedule(ctx context.Context, restaurantID int64, req *models.UpsertScheduleRequest, principal domain.Principal) (*models.ScheduleResponse, error) {
	s.logger.Info("UpsertSchedule: upserting schedule for restaurant=%d, day=%s by user=%d", restaurantID, req.DayOfWeek, principal.UserID)

	if err := s.checkOwnerAccess(ctx, restaurantID, principal); err != nil {
		return nil, err
	}

	schedule, err := req.ToDomain(restaurantID)
	if err != nil {
		s.logger.Warn("UpsertSchedule: invalid request for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("UpsertSchedule: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: UpsertSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertSchedule: successfully upserted schedule id=%d for restaurant=%d", saved.ID, restaurantID)
	return models.FromDomainSchedule(saved), nil
}

// BulkUpsertSchedules обновляет расписание на несколько дней одной транзакцией.
// Либо применяются все дни, либо ни одного.
func (s *Service) BulkUpsertSchedules(ctx context.Context, restaurantID int64, req *models.BulkUpsertSchedulesRequest, principal domain.Principal) (*models.ScheduleListResponse, error) {
	s.logger.Info("BulkUpsertSchedules: upserting %d schedules for restaurant=%d by user=%d", len(req.Schedules), restaurantID, principal.UserID)

	if err := s.checkOwnerAccess(ctx, restaurantID, principal); err != nil {
		return nil, err
	}

	if len(req.Schedules) == 0 {
		return nil, fmt.Errorf("%w: empty schedules list", ErrInvalidInput)
	}

	// Валидируем всё до открытия транзакции
	schedules := make([]*domain.WeeklySchedule, 0, len(req.Schedules))
	seen := make(map[time.Weekday]bool)
	for i := range req.Schedules {
		schedule, err := req.Schedules[i].ToDomain(restaurantID)
		if err != nil {
			s.logger.Warn("BulkUpsertSchedules: invalid request for restaurant=%d, day=%s: %v", restaurantID, req.Schedules[i].DayOfWeek, err)
			return nil, fmt.Errorf("%w: day %s: %v", ErrInvalidInput, req.Schedules[i].DayOfWeek, err)
		}
		if seen[schedule.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate day %s", ErrInvalidInput, req.Schedules[i].DayOfWeek)
		}
		seen[schedule.DayOfWeek] = true
		schedules = append(schedules, schedule)
	}

	saved := make([]*domain.WeeklySchedule, 0, len(schedules))
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, schedule := range schedules {
			result, err := s.scheduleRepo.Upsert(ctx, schedule)
			if err != nil {
				return err
			}
			saved = append(saved, result)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("BulkUpsertSchedules: transaction error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: BulkUpsertSchedules - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("BulkUpsertSchedules: successfully upserted %d schedules for restaurant=%d", len(saved), restaurantID)
	return models.FromDomainScheduleList(saved), nil
}

// DeleteScheduleDay удаляет расписание на день недели
// Доступно только владельцу ресторана и администратору
func (s *Service) DeleteScheduleDay(ctx context.Context, restaurantID int64, dayOfWeek string, principal domain.Principal) error {
	s.logger.Info("DeleteScheduleDay: deleting schedule for restaurant=%d, day=%s by user=%d", restaurantID, dayOfWeek, principal.UserID)

	if err := s.checkOwnerAccess(ctx, restaurantID, principal); err != nil {
		return err
	}

	day, ok := domain.ParseDayOfWeek(dayOfWeek)
	if !ok {
		s.logger.Warn("DeleteScheduleDay: invalid day=%s for restaurant=%d", dayOfWeek, restaurantID)
		return fmt.Errorf("%w: invalid day of week", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteByDay(ctx, restaurantID, day); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("DeleteScheduleDay: schedule not found for restaurant=%d, day=%s", restaurantID, dayOfWeek)
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteScheduleDay: repository error for restaurant=%d: %v", restaurantID, err)
		return fmt.Errorf("%w: DeleteScheduleDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteScheduleDay: successfully deleted schedule for restaurant=%d, day=%s", restaurantID, dayOfWeek)
	return nil
}

// ListClosedDates получает предстоящие даты закрытия ресторана
// Публичный метод, авторизация не требуется
func (s *Service) ListClosedDates(ctx context.Context, restaurantID int64) (*models.ClosedDateListResponse, error) {
	s.logger.Info("ListClosedDates: fetching closed dates for restaurant=%d", restaurantID)

	today := truncateToDate(s.timeProvider.Now())

	closedDates, err := s.closedDateRepo.ListUpcoming(ctx, restaurantID, today)
	if err != nil {
		s.logger.Error("ListClosedDates: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: ListClosedDates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListClosedDates: successfully fetched %d closed dates for restaurant=%d", len(closedDates), restaurantID)
	return models.FromDomainClosedDateList(closedDates), nil
}

// AddClosedDate добавляет дату закрытия ресторана
// Доступно только владельцу ресторана и администратору
func (s *Service) AddClosedDate(ctx context.Context, restaurantID int64, req *models.AddClosedDateRequest, principal domain.Principal) (*models.ClosedDateResponse, error) {
	s.logger.Info("AddClosedDate: adding closed date %s for restaurant=%d by user=%d", req.Date, restaurantID, principal.UserID)

	if err := s.checkOwnerAccess(ctx, restaurantID, principal); err != nil {
		return nil, err
	}

	closedDate, err := req.ToDomain(restaurantID)
	if err != nil {
		s.logger.Warn("AddClosedDate: invalid request for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.closedDateRepo.Create(ctx, closedDate)
	if err != nil {
		s.logger.Error("AddClosedDate: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: AddClosedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddClosedDate: successfully added closed date id=%d for restaurant=%d", saved.ID, restaurantID)
	return models.FromDomainClosedDate(saved), nil
}

// BulkAddClosedDates добавляет несколько дат закрытия одной транзакцией
func (s *Service) BulkAddClosedDates(ctx context.Context, restaurantID int64, req *models.BulkAddClosedDatesRequest, principal domain.Principal) (*models.ClosedDateListResponse, error) {
	s.logger.Info("BulkAddClosedDates: adding %d closed dates for restaurant=%d by user=%d", len(req.ClosedDates), restaurantID, principal.UserID)

	if err := s.checkOwnerAccess(ctx, restaurantID, principal); err != nil {
		return nil, err
	}

	if len(req.ClosedDates) == 0 {
		return nil, fmt.Errorf("%w: empty closed dates list", ErrInvalidInput)
	}

	closedDates := make([]*domain.ClosedDate, 0, len(req.ClosedDates))
	for i := range req.ClosedDates {
		closedDate, err := req.ClosedDates[i].ToDomain(restaurantID)
		if err != nil {
			s.logger.Warn("BulkAddClosedDates: invalid request for restaurant=%d, date=%s: %v", restaurantID, req.ClosedDates[i].Date, err)
			return nil, fmt.Errorf("%w: date %s: %v", ErrInvalidInput, req.ClosedDates[i].Date, err)
		}
		closedDates = append(closedDates, closedDate)
	}

	saved := make([]*domain.ClosedDate, 0, len(closedDates))
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, closedDate := range closedDates {
			result, err := s.closedDateRepo.Create(ctx, closedDate)
			if err != nil {
				return err
			}
			saved = append(saved, result)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("BulkAddClosedDates: transaction error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: BulkAddClosedDates - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("BulkAddClosedDates: successfully added %d closed dates for restaurant=%d", len(saved), restaurantID)
	return models.FromDomainClosedDateList(saved), nil
}

// RemoveClosedDate удаляет дату закрытия ресторана
// Доступно только владельцу ресторана и администратору
func (s *Service) RemoveClosedDate(ctx context.Context, restaurantID int64, rawDate string, principal domain.Principal) error {
	s.logger.Info("RemoveClosedDate: removing closed date %s for restaurant=%d by user=%d", rawDate, restaurantID, principal.UserID)

	if err := s.checkOwnerAccess(ctx, restaurantID, principal); err != nil {
		return err
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		s.logger.Warn("RemoveClosedDate: invalid date=%s for restaurant=%d", rawDate, restaurantID)
		return fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	if err := s.closedDateRepo.Delete(ctx, restaurantID, date); err != nil {
		if errors.Is(err, closedDateRepo.ErrClosedDateNotFound) {
			s.logger.Warn("RemoveClosedDate: closed date %s not found for restaurant=%d", rawDate, restaurantID)
			return ErrClosedDateNotFound
		}
		s.logger.Error("RemoveClosedDate: repository error for restaurant=%d: %v", restaurantID, err)
		return fmt.Errorf("%w: RemoveClosedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveClosedDate: successfully removed closed date %s for restaurant=%d", rawDate, restaurantID)
	return nil
}

// checkOwnerAccess проверяет, что пользователь владеет рестораном
func (s *Service) checkOwnerAccess(ctx context.Context, restaurantID int64, principal domain.Principal) error {
	if principal.IsAdmin() {
		return nil
	}

	restaurant, err := s.restaurantClient.GetRestaurant(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, restaurantClient.ErrRestaurantNotFound) {
			s.logger.Warn("checkOwnerAccess: restaurant id=%d not found", restaurantID)
			return ErrRestaurantNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get restaurant id=%d: %v", restaurantID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get restaurant: %v", ErrInternal, err)
	}

	if !principal.CanManageRestaurant(restaurant.OwnerID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of restaurant=%d", principal.UserID, restaurantID)
		return ErrAccessDenied
	}

	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
