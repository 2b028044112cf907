package create_appointment

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

const (
	// HeaderIdempotencyKey заголовок для безопасного повтора запроса
	HeaderIdempotencyKey = "Idempotency-Key"

	// HeaderReplayed выставляется, когда ответ возвращен по уже обработанному ключу
	HeaderReplayed = "Idempotent-Replayed"

	msgInvalidStoreID    = "некорректный ID магазина"
	msgInvalidInput      = "некорректные данные записи"
	msgSlotTaken         = "выбранный слот уже занят"
	msgRequestInProgress = "запрос с этим Idempotency-Key еще обрабатывается"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/stores/{storeId}/appointments
// Публичный метод: запись создает клиент. Опциональный заголовок Idempotency-Key.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.ParseID(mux.Vars(r)["storeId"])
	if err != nil {
		h.logger.Warn("POST /stores/{id}/appointments - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stores/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(storeID, r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.logger.Warn("POST /stores/{id}/appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("POST /stores/{id}/appointments - Failed to create appointment: store_id=%d, service_id=%d, error=%v",
				storeID, req.ServiceID, err)
			return
		}
		h.logger.Warn("POST /stores/{id}/appointments - Rejected: store_id=%d, service_id=%d, date=%s, time=%s, error=%v",
			storeID, req.ServiceID, req.Date, req.Time, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		w.Header().Set(HeaderReplayed, "true")
		status = http.StatusOK
	}

	h.logger.Info("POST /stores/{id}/appointments - Appointment created: appointment_id=%d, store_id=%d, replayed=%t",
		result.ID, storeID, result.Replayed)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, createAppointment.ErrSlotConflict):
		return msgSlotTaken
	case errors.Is(err, createAppointment.ErrRequestInProgress):
		return msgRequestInProgress
	case errors.Is(err, createAppointment.ErrInvalidInput):
		return msgInvalidInput
	default:
		return handlers.ReservationMessage(err)
	}
}
