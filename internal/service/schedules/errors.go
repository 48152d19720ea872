package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание на день не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrClosedDateNotFound возвращается, когда дата закрытия не найдена
	ErrClosedDateNotFound = errors.New("closed date not found")

	// ErrRestaurantNotFound возвращается, когда ресторан не найден
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
