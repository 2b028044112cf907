package whatsapp

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidPhone возвращается, когда номер не в формате E.164
	ErrInvalidPhone = errors.New("whatsapp client: phone must be in E.164 format")

	// ErrSendFailed возвращается, когда Twilio не принял сообщение
	ErrSendFailed = errors.New("whatsapp client: failed to send message")
)
