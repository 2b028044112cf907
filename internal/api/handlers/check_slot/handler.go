package check_slot

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/reservation"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	msgInvalidStoreID       = "некорректный ID магазина"
	msgInvalidServiceID     = "некорректный ID услуги"
	msgInvalidAppointmentID = "некорректный ID записи"
)

type Handler struct {
	checker SlotChecker
	logger  Logger
}

func NewHandler(checker SlotChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/slots/check
// Query params: serviceId, date, time (required), excludeAppointmentId (optional).
// Занятый или закрытый слот - это ответ 200 с available=false, а не ошибка.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := handlers.ParseID(mux.Vars(r)["storeId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	query := r.URL.Query()
	serviceID, err := handlers.ParseID(query.Get("serviceId"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}
	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, handlers.MsgInvalidDate)
		return
	}
	at, err := types.NewTimeStringFromString(query.Get("time"))
	if err != nil {
		handlers.RespondBadRequest(w, handlers.MsgInvalidTime)
		return
	}

	req := &reservation.ReserveRequest{StoreID: storeID, ServiceID: serviceID, Date: date, Time: at}
	if raw := query.Get("excludeAppointmentId"); raw != "" {
		id, err := handlers.ParseID(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)
			return
		}
		req.ExcludeAppointmentID = &id
	}

	result, err := h.checker.Check(r.Context(), req)
	switch {
	case err == nil:
		h.logger.Info("GET /stores/{id}/slots/check - Slot available: store_id=%d, date=%s, time=%s",
			storeID, date.Format(domain.DateFormat), at)
		handlers.RespondJSON(w, http.StatusOK, fromReservation(result))

	case isRejection(err):
		h.logger.Info("GET /stores/{id}/slots/check - Slot rejected: store_id=%d, date=%s, time=%s, reason=%v",
			storeID, date.Format(domain.DateFormat), at, err)
		handlers.RespondJSON(w, http.StatusOK, &CheckSlotResponse{
			Available: false,
			Date:      date.Format(domain.DateFormat),
			StartTime: at.String(),
			Code:      handlers.CodeFor(err),
			Reason:    handlers.ReservationMessage(err),
		})

	default:
		if !handlers.RespondDomainError(w, err, handlers.ReservationMessage(err)) {
			h.logger.Error("GET /stores/{id}/slots/check - Failed to check slot: store_id=%d, error=%v", storeID, err)
			return
		}
		h.logger.Warn("GET /stores/{id}/slots/check - Rejected: store_id=%d, error=%v", storeID, err)
	}
}

// isRejection отказ из-за состояния слота, а не из-за некорректного запроса
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrCapacityExceeded) ||
		errors.Is(err, domain.ErrScheduleClosed) ||
		errors.Is(err, domain.ErrServiceUnavailable)
}
