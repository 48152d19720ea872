package create_booking

import (
	"time"

	"github.com/bitebooking/booking-engine/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID       int64            // ID пользователя, от имени которого создаётся бронь
	RestaurantID int64            // ID ресторана
	Date         time.Time        // Дата бронирования (без времени)
	Time         types.TimeString // Время слота (например, "13:30")
	NumPeople    int              // Размер компании

	Observations    string  // Пожелания гостя (опционально)
	SpecialRequests string  // Особые запросы: аллергии, детский стул (опционально)
	ContactName     *string // Контактное имя (опционально)
	ContactPhone    *string // Контактный телефон (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64            // ID созданного бронирования
	RestaurantID int64            // ID ресторана
	UserID       int64            // ID пользователя
	BookingDate  time.Time        // Дата бронирования
	BookingTime  types.TimeString // Время слота
	NumPeople    int              // Размер компании
	Status       string           // Статус бронирования (всегда pending при создании)

	Observations    string  // Пожелания гостя
	SpecialRequests string  // Особые запросы
	ContactName     *string // Контактное имя
	ContactPhone    *string // Контактный телефон

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
