package transition_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено ни среди активных, ни в истории
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrInvalidStatusTransition возвращается при недопустимой смене статуса
	ErrInvalidStatusTransition = errors.New("transition_booking: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)
