package booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, означающие конкурентную запись того же времени
const (
	pqExclusionViolation   = "23P01"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// IsConflict возвращает true, если ошибка означает, что время уже занято
// или транзакция проиграла гонку и ее можно повторить
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSlotConflict) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation, pqSerializationFailure, pqDeadlockDetected:
			return true
		}
	}
	return false
}

// wrapQueryErr оборачивает ошибку выполнения запроса.
// Конфликт конкурентной транзакции становится ErrSlotConflict, остальное ErrExecQuery
func wrapQueryErr(op, step string, err error) error {
	if IsConflict(err) {
		return fmt.Errorf("%w: %s - %s: %v", ErrSlotConflict, op, step, err)
	}
	return fmt.Errorf("%w: %s - %s: %v", ErrExecQuery, op, step, err)
}
