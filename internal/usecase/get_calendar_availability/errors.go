package get_calendar_availability

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда мастер не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrProfessionalNotInUnit возвращается, когда мастер не работает в указанном салоне
	ErrProfessionalNotInUnit = errors.New("professional does not work at this unit")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена в салоне
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDataUnavailable возвращается, когда не удалось получить данные для расчета.
	// Вместе с ошибкой возвращается календарь, в котором все будущие дни недоступны.
	ErrDataUnavailable = errors.New("usecase: calendar data unavailable")
)
