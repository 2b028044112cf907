package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	maxBodyBytes     = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

// RespondJSON пишет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ошибку с произвольным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErrorWithCode пишет ошибку с машиночитаемым кодом
func RespondErrorWithCode(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// StatusFor возвращает HTTP статус по виду ошибки.
// 0 означает, что вид не распознан и ошибку нужно считать внутренней.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrServiceUnavailable), errors.Is(err, domain.ErrScheduleClosed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrCapacityExceeded), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden
	default:
		return 0
	}
}

// CodeFor возвращает машиночитаемый код по виду ошибки
func CodeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, domain.ErrScheduleClosed):
		return "schedule_closed"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAccessDenied):
		return "access_denied"
	default:
		return "internal"
	}
}

// ParseID извлекает положительный идентификатор из строки
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.Newf("id must be positive, got %d", id)
	}
	return id, nil
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(domain.DateFormat, raw)
}

// FormatTime форматирует момент в RFC3339, нулевое значение дает пустую строку
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// RespondDomainError пишет ошибку по ее виду с кодом и сообщением.
// Возвращает false для нераспознанных ошибок: их вызывающий логирует как внутренние.
func RespondDomainError(w http.ResponseWriter, err error, message string) bool {
	status := StatusFor(err)
	if status == 0 {
		RespondInternalError(w)
		return false
	}
	RespondErrorWithCode(w, status, CodeFor(err), message)
	return true
}
