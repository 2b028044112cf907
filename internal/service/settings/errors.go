package settings

import (
	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = domain.Mark("settings: store not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = domain.Mark("settings: access denied", domain.ErrAccessDenied)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.Mark("settings: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
