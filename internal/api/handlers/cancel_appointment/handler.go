package cancel_appointment

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
)

const (
	msgNotFound         = "запись не найдена"
	msgAlreadyCancelled = "запись уже отменена"
	msgInvalidReason    = "причина отмены слишком длинная"
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

// Handle PATCH /api/v1/public/appointments/{token}/cancel
// Отмена записи клиентом по ссылке из уведомления
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var body CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /public/appointments/{token}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.CancelByToken(r.Context(), token, body.Reason)
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("PATCH /public/appointments/{token}/cancel - Failed to cancel appointment: %v", err)
			return
		}
		h.logger.Warn("PATCH /public/appointments/{token}/cancel - Rejected: %v", err)
		return
	}

	h.logger.Info("PATCH /public/appointments/{token}/cancel - Appointment cancelled: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		return msgNotFound
	case errors.Is(err, appointments.ErrInvalidTransition):
		return msgAlreadyCancelled
	default:
		return msgInvalidReason
	}
}
