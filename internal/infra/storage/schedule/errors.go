package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание на день не найдено.
	// Для вызывающих это не сбой: отсутствие строки означает fallback на
	// часы работы ресторана по умолчанию.
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
