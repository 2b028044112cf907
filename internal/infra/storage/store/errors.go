package store

import "github.com/cockroachdb/errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("store.repository: store not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("store.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("store.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("store.repository: failed to scan row")
)
