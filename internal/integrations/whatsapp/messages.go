package whatsapp

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// dateLayout формат даты в тексте сообщений
const dateLayout = "02.01.2006"

func createdMessage(store *domain.Store, a *domain.Appointment, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello, %s! You are booked for %s at %s on %s at %s.",
		a.CustomerName, a.ServiceName, store.Name, a.Date.Format(dateLayout), a.Time)
	appendLink(&b, baseURL, a.PublicToken)
	return b.String()
}

func rescheduledMessage(store *domain.Store, a *domain.Appointment, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello, %s! Your %s at %s has been moved to %s at %s.",
		a.CustomerName, a.ServiceName, store.Name, a.Date.Format(dateLayout), a.Time)
	appendLink(&b, baseURL, a.PublicToken)
	return b.String()
}

func cancelledMessage(store *domain.Store, a *domain.Appointment) string {
	msg := fmt.Sprintf("Hello, %s! Your %s at %s on %s at %s has been cancelled.",
		a.CustomerName, a.ServiceName, store.Name, a.Date.Format(dateLayout), a.Time)
	if a.CancellationReason != nil && *a.CancellationReason != "" {
		msg += " Reason: " + *a.CancellationReason
	}
	return msg
}

func reminderMessage(store *domain.Store, a *domain.Appointment, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reminder: %s at %s tomorrow, %s at %s.",
		a.ServiceName, store.Name, a.Date.Format(dateLayout), a.Time)
	appendLink(&b, baseURL, a.PublicToken)
	return b.String()
}

func storeAlertMessage(a *domain.Appointment) string {
	return fmt.Sprintf("New appointment: %s (%s), %s on %s at %s.",
		a.CustomerName, a.CustomerPhone, a.ServiceName, a.Date.Format(dateLayout), a.Time)
}

func appendLink(b *strings.Builder, baseURL, token string) {
	if baseURL == "" || token == "" {
		return
	}
	fmt.Fprintf(b, " Manage your booking: %s/%s", strings.TrimRight(baseURL, "/"), token)
}

// validatePhone проверяет формат E.164: '+' и от 8 до 15 цифр
func validatePhone(phone string) error {
	if !strings.HasPrefix(phone, "+") {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	digits := phone[1:]
	if len(digits) < 8 || len(digits) > 15 {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
		}
	}
	return nil
}
