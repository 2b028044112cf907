package get_store_appointments

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const (
	msgInvalidStoreID = "некорректный ID магазина"
	msgInvalidParams  = "некорректные параметры запроса"
	msgStoreNotFound  = "магазин не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/appointments
// Query params: from, to, status, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.ParseID(mux.Vars(r)["storeId"])
	if err != nil {
		h.logger.Warn("GET /stores/{id}/appointments - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /stores/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(storeID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /stores/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит права владельца
	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("GET /stores/{id}/appointments - Failed to list appointments: store_id=%d, error=%v", storeID, err)
			return
		}
		h.logger.Warn("GET /stores/{id}/appointments - Rejected: store_id=%d, user_id=%d, error=%v", storeID, userID, err)
		return
	}

	h.logger.Info("GET /stores/{id}/appointments - Appointments retrieved successfully: store_id=%d, count=%d",
		storeID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func messageFor(err error) string {
	switch handlers.StatusFor(err) {
	case http.StatusForbidden:
		return handlers.MsgForbidden
	case http.StatusNotFound:
		return msgStoreNotFound
	default:
		return msgInvalidParams
	}
}
