package idempotency

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "scheduling:idempotency"
	pendingValue = "pending"

	// MaxKeyLength максимальная длина заголовка Idempotency-Key
	MaxKeyLength = 128
)

// Store хранит результат создания записи по ключу идемпотентности.
// Ключ сначала занимается маркером pending, затем заменяется ID записи.
type Store struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewStore создает новый экземпляр хранилища
func NewStore(client *redis.Client, ttl, pendingTTL time.Duration) *Store {
	return &Store{
		client:     client,
		ttl:        ttl,
		pendingTTL: pendingTTL,
	}
}

// Acquire занимает ключ. Если ключ уже завершен, возвращает ID записи и acquired=false.
// Если ключ занят незавершенным запросом, возвращает ErrInProgress.
func (s *Store) Acquire(ctx context.Context, storeID int64, key string) (appointmentID int64, acquired bool, err error) {
	if key == "" || len(key) > MaxKeyLength {
		return 0, false, fmt.Errorf("%w: length must be between 1 and %d", ErrInvalidKey, MaxKeyLength)
	}
	redisKey := buildKey(storeID, key)

	ok, err := s.client.SetNX(ctx, redisKey, pendingValue, s.pendingTTL).Result()
	if err != nil {
		return 0, false, fmt.Errorf("%w: Acquire - setnx: %v", ErrStorage, err)
	}
	if ok {
		return 0, true, nil
	}

	val, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		// ключ истек между SETNX и GET, повторяем один раз
		ok, err = s.client.SetNX(ctx, redisKey, pendingValue, s.pendingTTL).Result()
		if err != nil {
			return 0, false, fmt.Errorf("%w: Acquire - setnx: %v", ErrStorage, err)
		}
		if ok {
			return 0, true, nil
		}
		return 0, false, ErrInProgress
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: Acquire - get: %v", ErrStorage, err)
	}

	if val == pendingValue {
		return 0, false, ErrInProgress
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: Acquire - corrupted value %q", ErrStorage, val)
	}
	return id, false, nil
}

// Complete сохраняет ID созданной записи под ключом
func (s *Store) Complete(ctx context.Context, storeID int64, key string, appointmentID int64) error {
	if err := s.client.Set(ctx, buildKey(storeID, key), strconv.FormatInt(appointmentID, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Complete - set: %v", ErrStorage, err)
	}
	return nil
}

// Release освобождает ключ после неуспешного запроса, чтобы клиент мог повторить его
func (s *Store) Release(ctx context.Context, storeID int64, key string) error {
	if err := s.client.Del(ctx, buildKey(storeID, key)).Err(); err != nil {
		return fmt.Errorf("%w: Release - del: %v", ErrStorage, err)
	}
	return nil
}

// Ping проверяет соединение с redis
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func buildKey(storeID int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, storeID, key)
}
