package create_booking

import (
	"fmt"
	"time"

	"github.com/bitebooking/booking-engine/internal/domain"
	"github.com/bitebooking/booking-engine/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.NumPeople < domain.MinPartySize || req.NumPeople > domain.MaxPartySize {
		return fmt.Errorf("%w: numPeople must be between %d and %d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	if len(req.Observations) > domain.MaxObservationsLength {
		return fmt.Errorf("%w: observations too long, max %d characters", ErrInvalidInput, domain.MaxObservationsLength)
	}

	if len(req.SpecialRequests) > domain.MaxObservationsLength {
		return fmt.Errorf("%w: specialRequests too long, max %d characters", ErrInvalidInput, domain.MaxObservationsLength)
	}

	return nil
}

// validateDate проверяет, что дата попадает в допустимый горизонт.
// Горизонт maxAdvanceDays применяется только при настроенном расписании.
func validateDate(bookingDate time.Time, now time.Time, maxAdvanceDays int, scheduleExists bool) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	if !scheduleExists || maxAdvanceDays <= 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxAdvanceDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateBookingTime проверяет, что бронирование не нарушает minAdvanceHours
func validateBookingTime(
	bookingDate time.Time,
	bookingTime types.TimeString,
	now time.Time,
	minAdvanceHours int,
) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minAdvanceHours * 60)
	if err != nil {
		// Минимальное время ушло за полночь, сегодня бронировать поздно
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, minAdvanceHours)
	}

	if bookingTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, minAdvanceHours)
	}

	return nil
}

// validateSlotTime проверяет, что запрошенное время совпадает с одним из
// слотов дня. Время между слотами или вне окон обслуживания отклоняется.
func validateSlotTime(slots []domain.TimeSlot, t types.TimeString) error {
	for _, slot := range slots {
		if slot.Time.Equal(t) {
			return nil
		}
	}
	return ErrInvalidTimeSlot
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
