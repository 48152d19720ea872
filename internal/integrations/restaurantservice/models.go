package restaurantservice

import "github.com/bitebooking/booking-engine/pkg/types"

// Restaurant модель ресторана из RestaurantService.
// OpeningTime/ClosingTime - часы работы по умолчанию, используются для
// генерации слотов, когда у ресторана не настроено недельное расписание.
type Restaurant struct {
	ID          int64             `json:"id"`
	OwnerID     int64             `json:"owner_id"`
	Name        string            `json:"name"`
	OpeningTime *types.TimeString `json:"opening_time"`
	ClosingTime *types.TimeString `json:"closing_time"`
	IsActive    bool              `json:"is_active"`
}

// ErrorResponse модель ошибки от RestaurantService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
