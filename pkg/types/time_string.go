package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString время суток в формате HH:MM, хранится как количество минут от полуночи.
// Допустимый диапазон 00:00 - 24:00 (24:00 используется только как граница закрытия).
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString создает TimeString из времени (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*minutesPerHour + t.Minute(), valid: true}
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString{minutes: minutes, valid: true}, nil
}

// MustTimeString парсит строку и паникует при ошибке. Используется в тестах и константах.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// NewTimeStringFromString парсит строку формата HH:MM или HH:MM:SS
func NewTimeStringFromString(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeString{}, ErrInvalidTimeString
	}

	hours, err := parseTwoDigits(parts[0])
	if err != nil {
		return TimeString{}, err
	}
	minutes, err := parseTwoDigits(parts[1])
	if err != nil {
		return TimeString{}, err
	}
	seconds := 0
	if len(parts) == 3 {
		// Postgres может вернуть дробные секунды: 10:00:00.000000
		secPart := strings.SplitN(parts[2], ".", 2)[0]
		if seconds, err = parseTwoDigits(secPart); err != nil {
			return TimeString{}, err
		}
	}

	if minutes > 59 || seconds > 59 {
		return TimeString{}, ErrInvalidTimeString
	}
	total := hours*minutesPerHour + minutes
	if hours > 24 || total > minutesPerDay || (total == minutesPerDay && seconds > 0) {
		return TimeString{}, ErrTimeOutOfRange
	}

	return TimeString{minutes: total, valid: true}, nil
}

func parseTwoDigits(s string) (int, error) {
	if len(s) != 2 {
		return 0, ErrInvalidTimeString
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidTimeString
	}
	return n, nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() int {
	return t.minutes
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время задано и находится в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeString
	}
	if t.minutes < 0 || t.minutes > minutesPerDay {
		return ErrTimeOutOfRange
	}
	return nil
}

// String возвращает время в формате HH:MM
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/minutesPerHour, t.minutes%minutesPerHour)
}

// AddMinutes возвращает новое время, сдвинутое на n минут
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	if !t.valid {
		return TimeString{}, ErrInvalidTimeString
	}
	return NewTimeStringFromMinutes(t.minutes + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal возвращает true, если времена совпадают
func (t TimeString) Equal(other TimeString) bool {
	return t.valid == other.valid && t.minutes == other.minutes
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// NullTimeString TimeString, допускающий NULL в БД
type NullTimeString struct {
	TimeString TimeString
	Valid      bool
}

// Scan реализует sql.Scanner
func (n *NullTimeString) Scan(src interface{}) error {
	if src == nil {
		n.TimeString, n.Valid = TimeString{}, false
		return nil
	}
	if err := n.TimeString.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr возвращает указатель на время или nil
func (n NullTimeString) Ptr() *TimeString {
	if !n.Valid {
		return nil
	}
	ts := n.TimeString
	return &ts
}
