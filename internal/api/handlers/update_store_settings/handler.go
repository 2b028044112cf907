package update_store_settings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const (
	msgInvalidStoreID  = "некорректный ID магазина"
	msgStoreNotFound   = "магазин не найден"
	msgInvalidSettings = "некорректные настройки магазина"
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

// Handle PUT /api/v1/stores/{storeId}/settings
// Доступно только владельцу магазина
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.ParseID(mux.Vars(r)["storeId"])
	if err != nil {
		h.logger.Warn("PUT /stores/{id}/settings - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /stores/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /stores/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), storeID, req.ToServiceRequest(userID))
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("PUT /stores/{id}/settings - Failed to update settings: store_id=%d, error=%v", storeID, err)
			return
		}
		h.logger.Warn("PUT /stores/{id}/settings - Rejected: store_id=%d, user_id=%d, error=%v", storeID, userID, err)
		return
	}

	h.logger.Info("PUT /stores/{id}/settings - Settings updated: store_id=%d, capacity=%d, mode=%s",
		storeID, result.EffectiveCapacity, result.OccupancyMode)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func messageFor(err error) string {
	switch handlers.StatusFor(err) {
	case http.StatusForbidden:
		return handlers.MsgForbidden
	case http.StatusNotFound:
		return msgStoreNotFound
	default:
		return msgInvalidSettings
	}
}
