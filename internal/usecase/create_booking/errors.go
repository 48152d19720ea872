package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден
	ErrRestaurantNotFound = errors.New("create_booking: restaurant not found")

	// ErrRestaurantClosed возвращается, когда ресторан закрыт в указанную дату
	ErrRestaurantClosed = errors.New("create_booking: restaurant is closed on this date")

	// ErrOnlineBookingsDisabled возвращается, когда день не принимает онлайн-брони
	ErrOnlineBookingsDisabled = errors.New("create_booking: online bookings are disabled for this day")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minAdvanceHours
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrCapacityExceeded возвращается, когда в слоте не хватает мест
	ErrCapacityExceeded = errors.New("create_booking: slot capacity exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CapacityExceededError несёт детали отказа по вместимости.
// Разворачивается в ErrCapacityExceeded через errors.Is.
type CapacityExceededError struct {
	Available int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%v: %d seats available, %d requested", ErrCapacityExceeded, e.Available, e.Requested)
}

// Unwrap позволяет сопоставлять ошибку с ErrCapacityExceeded
func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}
