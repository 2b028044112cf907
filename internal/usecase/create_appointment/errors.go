package create_appointment

import (
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Mark("create_appointment: invalid input data", domain.ErrValidation)

	// ErrSlotConflict возвращается, когда параллельная запись заняла слот
	ErrSlotConflict = domain.Mark("create_appointment: slot was taken concurrently", domain.ErrCapacityExceeded)

	// ErrRequestInProgress возвращается, когда запрос с тем же Idempotency-Key еще выполняется
	ErrRequestInProgress = domain.Mark("create_appointment: request with this idempotency key is in progress", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
