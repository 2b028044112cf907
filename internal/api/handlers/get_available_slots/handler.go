package get_available_slots

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStoreID       = "некорректный ID магазина"
	msgInvalidServiceID     = "некорректный ID услуги"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingDate          = "укажите date или from и to"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStoreNotFound        = "магазин не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgDateInPast           = "дата уже прошла"
	msgDateTooFar           = "дата слишком далеко в будущем"
	msgInvalidRange         = "некорректный диапазон дат"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/available-slots
// Query params: serviceId (required), date или from+to (YYYY-MM-DD), excludeAppointmentId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.ParseID(mux.Vars(r)["storeId"])
	if err != nil {
		h.logger.Warn("GET /stores/{id}/available-slots - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	query := r.URL.Query()

	serviceID, err := handlers.ParseID(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /stores/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req := &getAvailableSlots.Request{StoreID: storeID, ServiceID: serviceID}

	// Один день через date или диапазон через from/to
	fromStr, toStr := query.Get("from"), query.Get("to")
	if date := query.Get("date"); date != "" {
		fromStr, toStr = date, date
	}
	if fromStr == "" || toStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	if req.From, err = handlers.ParseDate(fromStr); err != nil {
		h.logger.Warn("GET /stores/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if req.To, err = handlers.ParseDate(toStr); err != nil {
		h.logger.Warn("GET /stores/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if raw := query.Get("excludeAppointmentId"); raw != "" {
		id, err := handlers.ParseID(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)
			return
		}
		req.ExcludeAppointmentID = &id
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("GET /stores/{id}/available-slots - Failed to get slots: store_id=%d, service_id=%d, error=%v",
				storeID, serviceID, err)
			return
		}
		h.logger.Warn("GET /stores/{id}/available-slots - Rejected: store_id=%d, service_id=%d, error=%v",
			storeID, serviceID, err)
		return
	}

	h.logger.Info("GET /stores/{id}/available-slots - Slots retrieved: store_id=%d, service_id=%d, days=%d, slots=%d",
		storeID, serviceID, len(result.Days), result.TotalSlots())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, getAvailableSlots.ErrStoreNotFound):
		return msgStoreNotFound
	case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
		return msgServiceNotFound
	case errors.Is(err, getAvailableSlots.ErrDateInPast):
		return msgDateInPast
	case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
		return msgDateTooFar
	default:
		return msgInvalidRange
	}
}
