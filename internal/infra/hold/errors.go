package hold

import "errors"

var (
	// ErrHoldBusy возвращается, когда расписание мастера на дату уже удерживается другим запросом
	ErrHoldBusy = errors.New("hold: schedule is held by another request")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("hold: redis error")
)
