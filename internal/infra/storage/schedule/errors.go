package schedule

import "github.com/cockroachdb/errors"

var (
	// ErrInconsistentRow возвращается, когда строка расписания не соответствует своему режиму
	ErrInconsistentRow = errors.New("schedule.repository: inconsistent working hours row")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
