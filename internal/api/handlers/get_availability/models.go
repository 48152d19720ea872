package get_availability

import (
	"github.com/bitebooking/booking-engine/internal/domain"
	getAvailability "github.com/bitebooking/booking-engine/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Time              string `json:"time"`
	Period            string `json:"period"`
	MaxCapacity       int    `json:"maxCapacity"`
	AvailableCapacity int    `json:"availableCapacity"`
	IsAvailable       bool   `json:"isAvailable"`
}

// AvailabilityResponse HTTP модель доступности на дату
type AvailabilityResponse struct {
	RestaurantID int64          `json:"restaurantId"`
	Date         string         `json:"date"`
	IsOpen       bool           `json:"isOpen"`
	Reason       string         `json:"reason,omitempty"`
	Slots        []SlotResponse `json:"slots"`
}

// WeekAvailabilityResponse HTTP модель доступности на неделю
type WeekAvailabilityResponse struct {
	RestaurantID int64                  `json:"restaurantId"`
	StartDate    string                 `json:"startDate"`
	Days         []AvailabilityResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Time:              slot.Time.String(),
			Period:            slot.Period,
			MaxCapacity:       slot.MaxCapacity,
			AvailableCapacity: slot.AvailableCapacity,
			IsAvailable:       slot.IsAvailable,
		}
	}

	return &AvailabilityResponse{
		RestaurantID: resp.RestaurantID,
		Date:         resp.Date.Format(domain.DateFormat),
		IsOpen:       resp.IsOpen,
		Reason:       resp.Reason,
		Slots:        slots,
	}
}

// FromUseCaseWeekResponse конвертирует недельный ответ use case в HTTP response
func FromUseCaseWeekResponse(resp *getAvailability.WeekResponse) *WeekAvailabilityResponse {
	days := make([]AvailabilityResponse, len(resp.Days))
	for i := range resp.Days {
		days[i] = *FromUseCaseResponse(&resp.Days[i])
	}

	return &WeekAvailabilityResponse{
		RestaurantID: resp.RestaurantID,
		StartDate:    resp.StartDate.Format(domain.DateFormat),
		Days:         days,
	}
}
