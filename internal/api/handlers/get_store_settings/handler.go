package get_store_settings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const (
	msgInvalidStoreID = "некорректный ID магазина"
	msgStoreNotFound  = "магазин не найден"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.ParseID(mux.Vars(r)["storeId"])
	if err != nil {
		h.logger.Warn("GET /stores/{id}/settings - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	settings, err := h.service.Get(r.Context(), storeID)
	if err != nil {
		if !handlers.RespondDomainError(w, err, msgStoreNotFound) {
			h.logger.Error("GET /stores/{id}/settings - Failed to get settings: store_id=%d, error=%v", storeID, err)
			return
		}
		h.logger.Warn("GET /stores/{id}/settings - Store not found: store_id=%d", storeID)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, settings)
}
