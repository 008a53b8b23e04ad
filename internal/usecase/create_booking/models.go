package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID     int64             // ID клиента (из заголовка X-User-ID)
	UnitID         int64             // ID салона
	ProfessionalID int64             // ID мастера
	ServiceIDs     []int64           // Услуги в порядке выбора
	Date           time.Time         // Дата бронирования (без времени)
	StartTime      types.TimeString  // Время начала
	EndTime        *types.TimeString // Ожидаемое время окончания (опционально, должно совпасть с расчетным)
	Notes          *string           // Комментарий клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	CustomerID      int64
	UnitID          int64
	ProfessionalID  int64
	ServiceIDs      []int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	TotalPrice      float64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
