package create_booking

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда мастер не найден
	ErrProfessionalNotFound = errors.New("create_booking: professional not found")

	// ErrProfessionalNotInUnit возвращается, когда мастер не работает в указанном салоне
	ErrProfessionalNotInUnit = errors.New("create_booking: professional does not work at this unit")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда выбранное время уже недоступно.
	// Клиент должен пересчитать доступность и повторить попытку.
	ErrSlotNotAvailable = errors.New("create_booking: slot is no longer available")

	// ErrSlotBeingBooked возвращается, когда расписание мастера на эту дату сейчас бронирует кто-то другой
	ErrSlotBeingBooked = errors.New("create_booking: slot is being booked, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
