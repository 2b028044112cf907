package reservation

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ReserveRequest запрос на проверку или резервирование слота
type ReserveRequest struct {
	StoreID              int64
	ServiceID            int64
	Date                 time.Time        // Дата (без времени)
	Time                 types.TimeString // Время начала, "HH:MM"
	ExcludeAppointmentID *int64           // Редактируемая запись не учитывается в занятости
}

// Reservation результат успешной проверки слота
type Reservation struct {
	Store           *domain.Store
	Service         *domain.Service
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	Occupied        int // Активных записей в слоте до текущей
	TotalSpots      int
}

// AvailableSpots количество свободных мест до текущей записи
func (r *Reservation) AvailableSpots() int {
	return r.TotalSpots - r.Occupied
}
