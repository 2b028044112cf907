package idempotency

import "github.com/cockroachdb/errors"

var (
	// ErrInProgress возвращается, когда запрос с тем же ключом еще выполняется
	ErrInProgress = errors.New("idempotency: request with this key is in progress")

	// ErrInvalidKey возвращается при пустом или слишком длинном ключе
	ErrInvalidKey = errors.New("idempotency: invalid key")

	// ErrStorage возвращается при ошибках redis
	ErrStorage = errors.New("idempotency: storage error")
)
