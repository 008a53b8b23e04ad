package leave

import "errors"

var (
	// ErrLeaveNotFound возвращается, когда запись о выходном не найдена
	ErrLeaveNotFound = errors.New("leave.repository: leave not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("leave.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("leave.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("leave.repository: failed to scan row")
)
