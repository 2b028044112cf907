package get_appointment

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.ParseID(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	// Сервис сам проверит, что пользователь владеет магазином
	appointment, err := h.service.GetByID(r.Context(), appointmentID, userID)
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: appointment_id=%d, error=%v", appointmentID, err)
			return
		}
		h.logger.Warn("GET /appointments/{id} - Rejected: appointment_id=%d, user_id=%d, error=%v", appointmentID, userID, err)
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}

// HandlePublic GET /api/v1/public/appointments/{token}
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.service.GetByToken(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("GET /public/appointments/{token} - Failed to get appointment: %v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, appointment)
}

func messageFor(err error) string {
	if handlers.StatusFor(err) == http.StatusForbidden {
		return handlers.MsgForbidden
	}
	return msgNotFound
}
