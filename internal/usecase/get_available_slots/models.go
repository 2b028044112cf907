package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов.
// Для одного дня From и To совпадают.
type Request struct {
	StoreID              int64
	ServiceID            int64
	From                 time.Time // Первый день диапазона (без времени)
	To                   time.Time // Последний день диапазона включительно
	ExcludeAppointmentID *int64    // Запись, которую клиент переносит
}

// Response модель ответа со списком доступных слотов
type Response struct {
	StoreID         int64
	ServiceID       int64
	DurationMinutes int
	Days            []Day
}

// Day слоты одного дня
type Day struct {
	Date  time.Time
	Slots []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	AvailableSpots  int              // Количество свободных мест
	TotalSpots      int              // Общее количество мест
}

// TotalSlots количество слотов во всех днях
func (r *Response) TotalSlots() int {
	total := 0
	for _, d := range r.Days {
		total += len(d.Slots)
	}
	return total
}
