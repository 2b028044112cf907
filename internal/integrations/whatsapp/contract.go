package whatsapp

import (
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageSender часть Twilio REST API, отвечающая за отправку сообщений
type MessageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Metrics интерфейс метрик
type Metrics interface {
	IncNotification(kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
