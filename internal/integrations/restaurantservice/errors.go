package restaurantservice

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не существует
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("restaurantservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("restaurantservice client: invalid response")
)
