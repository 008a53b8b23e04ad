package get_available_slots

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда мастер не найден
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrProfessionalNotInUnit возвращается, когда мастер не работает в указанном салоне
	ErrProfessionalNotInUnit = errors.New("professional does not work at this unit")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена в салоне
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidDate возвращается при некорректной дате (например, в прошлом)
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDataUnavailable возвращается, когда не удалось получить данные для расчета.
	// Вместе с ошибкой возвращается пустой ответ (все периоды недоступны), запрос можно повторить.
	ErrDataUnavailable = errors.New("usecase: availability data unavailable")
)
