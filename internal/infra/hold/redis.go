// Package hold удерживает расписание мастера на дату на время создания бронирования
package hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

const keyPrefix = "hold:professional"

// unlockScript удаляет ключ, только если он все еще принадлежит владельцу токена
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

// RedisHolder удержание через SET NX с TTL
type RedisHolder struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisHolder создает удержание с указанным временем жизни ключа
func NewRedisHolder(client redis.UniversalClient, ttl time.Duration) *RedisHolder {
	return &RedisHolder{client: client, ttl: ttl}
}

// NewClient создает клиента Redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

// Key возвращает ключ удержания для мастера и даты
func Key(professionalID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, professionalID, civiltime.FormatDate(date))
}

// Acquire берет удержание и возвращает токен владельца
func (h *RedisHolder) Acquire(ctx context.Context, professionalID int64, date time.Time) (string, error) {
	token := uuid.NewString()

	ok, err := h.client.SetNX(ctx, Key(professionalID, date), token, h.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("%w: Acquire - setnx: %v", ErrRedis, err)
	}
	if !ok {
		return "", ErrHoldBusy
	}

	return token, nil
}

// Release снимает удержание, если оно все еще принадлежит токену
func (h *RedisHolder) Release(ctx context.Context, professionalID int64, date time.Time, token string) error {
	_, err := unlockScript.Run(ctx, h.client, []string{Key(professionalID, date)}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: Release - unlock script: %v", ErrRedis, err)
	}
	return nil
}

// NoopHolder используется, когда Redis выключен; защиту от гонок обеспечивает только БД
type NoopHolder struct{}

func (NoopHolder) Acquire(context.Context, int64, time.Time) (string, error) {
	return "", nil
}

func (NoopHolder) Release(context.Context, int64, time.Time, string) error {
	return nil
}
