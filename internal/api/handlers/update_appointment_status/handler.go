package update_appointment_status

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "недопустимая смена статуса"
	msgInvalidStatus        = "некорректный статус или причина отмены"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/status
// Подтверждение или отмена записи владельцем магазина
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.ParseID(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	var body UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), appointmentID, &models.UpdateStatusRequest{
		UserID: userID,
		Status: body.Status,
		Reason: body.Reason,
	})
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, error=%v",
				appointmentID, err)
			return
		}
		h.logger.Warn("PATCH /appointments/{id}/status - Rejected: appointment_id=%d, user_id=%d, status=%s, error=%v",
			appointmentID, userID, body.Status, err)
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: appointment_id=%d, status=%s", appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, appointments.ErrAppointmentNotFound), errors.Is(err, appointments.ErrStoreNotFound):
		return msgNotFound
	case errors.Is(err, appointments.ErrAccessDenied):
		return handlers.MsgForbidden
	case errors.Is(err, appointments.ErrInvalidTransition):
		return msgInvalidTransition
	default:
		return msgInvalidStatus
	}
}
