package schedule

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда мастер не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrLeaveNotFound возвращается, когда запись о выходном не найдена
	ErrLeaveNotFound = errors.New("leave not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidGranularity возвращается при неподдерживаемом шаге сетки
	ErrInvalidGranularity = errors.New("invalid slot granularity")

	// ErrInvalidPeriod возвращается при некорректном периоде работы
	ErrInvalidPeriod = errors.New("invalid operating period")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
