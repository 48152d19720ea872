package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitebooking/booking-engine/internal/domain"
	bookingRepo "github.com/bitebooking/booking-engine/internal/infra/storage/booking"
	restaurantClient "github.com/bitebooking/booking-engine/internal/integrations/restaurantservice"
	"github.com/bitebooking/booking-engine/internal/integrations/notifyservice"
	"github.com/bitebooking/booking-engine/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями.
// Реализует машину состояний: все переходы статусов проходят через
// domain.CanTransitionTo, переходы из терминальных статусов запрещены.
type Service struct {
	bookingRepo      BookingRepository
	restaurantClient RestaurantServiceClient
	notifyClient     NotifyServiceClient
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	restaurantClient RestaurantServiceClient,
	notifyClient NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		restaurantClient: restaurantClient,
		notifyClient:     notifyClient,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу брони, владельцу ресторана и администратору
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(ctx, booking, principal); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", principal.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Пользователь видит только свои брони, администратор - любые
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest, principal domain.Principal) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != principal.UserID && !principal.IsAdmin() {
		s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d", principal.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.UserBookingsFilter{
		UserID: req.UserID,
		From:   req.From,
		Until:  req.Until,
	}

	// Конвертируем статус из строки в domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByUserWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetRestaurantBookings получает бронирования ресторана с гибкой фильтрацией
// Доступно только владельцу ресторана и администратору
//
// Примеры использования:
//   - Брони на сегодня: StartDate и EndDate указывают на одну дату
//   - Только ожидающие подтверждения: Status = "pending"
//   - Вся история, включая отменённые: IncludeInactive = true
func (s *Service) GetRestaurantBookings(ctx context.Context, req *models.GetRestaurantBookingsRequest, principal domain.Principal) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetRestaurantBookings: fetching bookings for restaurant=%d, user=%d", req.RestaurantID, principal.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права владельца ресторана
	if err := s.checkOwnerAccess(ctx, req.RestaurantID, principal); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetRestaurantBookings: invalid filter for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByRestaurantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRestaurantBookings: repository error for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: GetRestaurantBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRestaurantBookings: successfully fetched %d bookings for restaurant=%d", len(bookings), req.RestaurantID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование (pending -> confirmed)
// Доступно только владельцу ресторана и администратору
func (s *Service) Confirm(ctx context.Context, bookingID int64, principal domain.Principal) error {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", bookingID, principal.UserID)

	booking, err := s.getBooking(ctx, "Confirm", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, booking.RestaurantID, principal); err != nil {
		s.logger.Warn("Confirm: access denied for user=%d to booking id=%d", principal.UserID, bookingID)
		return err
	}

	if err := s.transition(ctx, "Confirm", booking, domain.StatusConfirmed); err != nil {
		return err
	}

	s.notifyClient.NotifyBookingConfirmed(ctx, s.buildEvent(booking, ""))

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
	return nil
}

// Reject отклоняет бронирование (pending -> rejected)
// Доступно только владельцу ресторана и администратору
func (s *Service) Reject(ctx context.Context, bookingID int64, req *models.RejectBookingRequest, principal domain.Principal) error {
	s.logger.Info("Reject: rejecting booking id=%d by user=%d", bookingID, principal.UserID)

	booking, err := s.getBooking(ctx, "Reject", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, booking.RestaurantID, principal); err != nil {
		s.logger.Warn("Reject: access denied for user=%d to booking id=%d", principal.UserID, bookingID)
		return err
	}

	if err := s.transitionWithReason(ctx, "Reject", booking, domain.StatusRejected, req.Reason); err != nil {
		return err
	}

	s.notifyClient.NotifyBookingRejected(ctx, s.buildEvent(booking, req.Reason))

	s.logger.Info("Reject: successfully rejected booking id=%d", bookingID)
	return nil
}

// Cancel отменяет бронирование (pending/confirmed -> cancelled)
// Доступно владельцу брони, владельцу ресторана и администратору
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest, principal domain.Principal) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, principal.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkBookingAccess(ctx, booking, principal); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", principal.UserID, bookingID)
		return err
	}

	if err := s.transitionWithReason(ctx, "Cancel", booking, domain.StatusCancelled, req.CancellationReason); err != nil {
		return err
	}

	s.notifyClient.NotifyBookingCancelled(ctx, s.buildEvent(booking, req.CancellationReason))

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Complete помечает бронирование завершённым (confirmed -> completed)
// Доступно только владельцу ресторана и администратору
func (s *Service) Complete(ctx context.Context, bookingID int64, principal domain.Principal) error {
	s.logger.Info("Complete: completing booking id=%d by user=%d", bookingID, principal.UserID)

	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, booking.RestaurantID, principal); err != nil {
		s.logger.Warn("Complete: access denied for user=%d to booking id=%d", principal.UserID, bookingID)
		return err
	}

	if err := s.transition(ctx, "Complete", booking, domain.StatusCompleted); err != nil {
		return err
	}

	s.logger.Info("Complete: successfully completed booking id=%d", bookingID)
	return nil
}

// MarkNoShow помечает неявку гостя (confirmed -> no_show)
// Доступно только владельцу ресторана и администратору
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64, principal domain.Principal) error {
	s.logger.Info("MarkNoShow: marking no-show for booking id=%d by user=%d", bookingID, principal.UserID)

	booking, err := s.getBooking(ctx, "MarkNoShow", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, booking.RestaurantID, principal); err != nil {
		s.logger.Warn("MarkNoShow: access denied for user=%d to booking id=%d", principal.UserID, bookingID)
		return err
	}

	if err := s.transition(ctx, "MarkNoShow", booking, domain.StatusNoShow); err != nil {
		return err
	}

	s.logger.Info("MarkNoShow: successfully marked no-show for booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) transition(ctx context.Context, op string, booking *domain.Booking, target domain.BookingStatus) error {
	if !booking.Status.CanTransitionTo(target) {
		s.logger.Warn("%s: invalid transition %s -> %s for booking id=%d", op, booking.Status, target, booking.ID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, target); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	booking.Status = target
	return nil
}

func (s *Service) transitionWithReason(ctx context.Context, op string, booking *domain.Booking, target domain.BookingStatus, reason string) error {
	if len(reason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("%s: reason too long (%d chars) for booking id=%d", op, len(reason), booking.ID)
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if !booking.Status.CanTransitionTo(target) {
		s.logger.Warn("%s: invalid transition %s -> %s for booking id=%d", op, booking.Status, target, booking.ID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
	}

	if err := s.bookingRepo.UpdateStatusWithReason(ctx, booking.ID, target, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	booking.Status = target
	return nil
}

// checkBookingAccess проверяет доступ к конкретной брони.
// Владелец брони, владелец ресторана и администратор имеют доступ.
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, principal domain.Principal) error {
	if booking.UserID == principal.UserID || principal.IsAdmin() {
		return nil
	}

	// checkOwnerAccess сам различает "не владелец" и сбои поиска ресторана
	return s.checkOwnerAccess(ctx, booking.RestaurantID, principal)
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

func (s *Service) buildEvent(booking *domain.Booking, reason string) notifyservice.BookingEvent {
	return notifyservice.BookingEvent{
		BookingID:    booking.ID,
		RestaurantID: booking.RestaurantID,
		UserID:       booking.UserID,
		BookingDate:  booking.BookingDate.Format(domain.DateFormat),
		BookingTime:  booking.BookingTime.String(),
		NumPeople:    booking.NumPeople,
		Reason:       reason,
	}
}
