package transition_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request запрос на смену статуса бронирования
type Request struct {
	BookingID int64
	NewStatus domain.BookingStatus
	Reason    *string // Причина отмены или комментарий (опционально)
	ActorID   int64   // Кто меняет статус (из заголовка X-User-ID)
}

// Response результат смены статуса
type Response struct {
	BookingID      int64
	PreviousStatus domain.BookingStatus
	Status         domain.BookingStatus
	// FinalizedAt заполнен, если бронирование перенесено в историю
	FinalizedAt *time.Time
}
