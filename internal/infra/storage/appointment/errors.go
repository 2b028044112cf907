package appointment

import "github.com/cockroachdb/errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrDuplicateToken возвращается при коллизии публичного токена
	ErrDuplicateToken = errors.New("appointment.repository: duplicate public token")

	// ErrTransaction возвращается, когда операция требует транзакцию
	ErrTransaction = errors.New("appointment.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
