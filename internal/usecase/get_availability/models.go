package get_availability

import (
	"time"

	"github.com/bitebooking/booking-engine/pkg/types"
)

// Request модель запроса на получение доступности на дату
type Request struct {
	RestaurantID int64     // ID ресторана
	Date         time.Time // Дата для получения слотов (без времени)
	NumPeople    int       // Размер группы; ноль трактуется как один человек
}

// WeekRequest модель запроса на получение доступности на неделю
type WeekRequest struct {
	RestaurantID int64     // ID ресторана
	StartDate    time.Time // Первый день недели; нулевая дата означает "с сегодня"
	NumPeople    int       // Размер группы; ноль трактуется как один человек
}

// Response модель ответа с доступностью на дату
type Response struct {
	RestaurantID int64     `json:"restaurantId"`
	Date         time.Time `json:"date"`
	IsOpen       bool      `json:"isOpen"`
	Reason       string    `json:"reason,omitempty"` // Причина закрытия, пустая если открыт
	Slots        []Slot    `json:"slots"`
}

// WeekResponse модель ответа с доступностью на семь дней
type WeekResponse struct {
	RestaurantID int64      `json:"restaurantId"`
	StartDate    time.Time  `json:"startDate"`
	Days         []Response `json:"days"`
}

// Slot модель временного слота
type Slot struct {
	Time              types.TimeString `json:"time"`              // Время начала слота, например "13:30"
	Period            string           `json:"period"`            // LUNCH, DINNER или GENERAL
	MaxCapacity       int              `json:"maxCapacity"`       // Вместимость слота
	AvailableCapacity int              `json:"availableCapacity"` // Свободные места
	IsAvailable       bool             `json:"isAvailable"`
}
