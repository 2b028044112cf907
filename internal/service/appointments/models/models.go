package models

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidPeriod возвращается, когда from позже to
	ErrInvalidPeriod = errors.New("'from' must not be after 'to'")
)

// Request модели

// ListRequest запрос на получение записей магазина
type ListRequest struct {
	UserID           int64
	StoreID          int64
	From             *time.Time
	To               *time.Time
	Status           *string
	IncludeCancelled bool
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	UserID int64
	Status string
	Reason *string // Причина отмены, только для cancelled
}

// ToDomainFilter конвертирует запрос в фильтр репозитория
func (r *ListRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StoreID:          r.StoreID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.From != nil {
		from := domain.DateOnly(*r.From)
		filter.From = &from
	}
	if r.To != nil {
		to := domain.DateOnly(*r.To)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return domain.AppointmentsFilter{}, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return domain.AppointmentsFilter{}, err
		}
		filter.Status = &status
		// явный фильтр по cancelled включает отмененные
		if status == domain.StatusCancelled {
			filter.IncludeCancelled = true
		}
	}

	return filter, nil
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Response модели

// AppointmentResponse запись
type AppointmentResponse struct {
	ID                 int64            `json:"id"`
	StoreID            int64            `json:"storeId"`
	ServiceID          int64            `json:"serviceId"`
	PublicToken        string           `json:"publicToken"`
	CustomerName       string           `json:"customerName"`
	CustomerPhone      string           `json:"customerPhone"`
	Date               string           `json:"date"` // "2025-10-15"
	Time               types.TimeString `json:"time"`
	DurationMinutes    int              `json:"durationMinutes"`
	Status             string           `json:"status"`
	ServiceName        string           `json:"serviceName"`
	PriceSnapshot      float64          `json:"priceSnapshot"`
	Notes              *string          `json:"notes,omitempty"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		StoreID:            a.StoreID,
		ServiceID:          a.ServiceID,
		PublicToken:        a.PublicToken,
		CustomerName:       a.CustomerName,
		CustomerPhone:      a.CustomerPhone,
		Date:               a.Date.Format(domain.DateFormat),
		Time:               a.Time,
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		PriceSnapshot:      a.PriceSnapshot,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		result.Appointments = append(result.Appointments, *FromDomainAppointment(a))
	}
	return result
}
