package reschedule_appointment

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgNotActive            = "запись отменена"
	msgSlotTaken            = "выбранный слот уже занят"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/slot
// Перенос записи владельцем магазина
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.ParseID(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/slot - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/slot - Missing user ID")
		handlers.RespondUnauthorized(w, handlers.MsgMissingUserID)
		return
	}

	h.reschedule(w, r, "PATCH /appointments/{id}/slot", &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
	})
}

// HandlePublic PATCH /api/v1/public/appointments/{token}/slot
// Перенос записи клиентом по ссылке из уведомления
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	h.reschedule(w, r, "PATCH /public/appointments/{token}/slot", &rescheduleAppointment.Request{
		PublicToken: mux.Vars(r)["token"],
	})
}

func (h *Handler) reschedule(w http.ResponseWriter, r *http.Request, route string, req *rescheduleAppointment.Request) {
	var body RescheduleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	date, err := handlers.ParseDate(body.Date)
	if err != nil {
		handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
		return
	}
	at, err := types.NewTimeStringFromString(body.Time)
	if err != nil {
		handlers.RespondBadRequest(w, handlers.MsgInvalidTime)
		return
	}
	req.Date = date
	req.Time = at

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if !handlers.RespondDomainError(w, err, messageFor(err)) {
			h.logger.Error("%s - Failed to reschedule appointment: appointment_id=%d, error=%v", route, req.AppointmentID, err)
			return
		}
		h.logger.Warn("%s - Rejected: appointment_id=%d, date=%s, time=%s, error=%v",
			route, req.AppointmentID, body.Date, body.Time, err)
		return
	}

	h.logger.Info("%s - Appointment rescheduled: appointment_id=%d, from %s %s to %s %s",
		route, result.ID, result.PreviousDate.Format(domain.DateFormat), result.PreviousTime, body.Date, result.Time)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
		return msgNotFound
	case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
		return handlers.MsgForbidden
	case errors.Is(err, rescheduleAppointment.ErrNotActive):
		return msgNotActive
	case errors.Is(err, rescheduleAppointment.ErrSlotConflict):
		return msgSlotTaken
	default:
		return handlers.ReservationMessage(err)
	}
}
