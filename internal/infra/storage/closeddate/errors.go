package closeddate

import "errors"

var (
	// ErrClosedDateNotFound возвращается, когда дата закрытия не найдена
	ErrClosedDateNotFound = errors.New("closeddate.repository: closed date not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("closeddate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("closeddate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("closeddate.repository: failed to scan row")
)
