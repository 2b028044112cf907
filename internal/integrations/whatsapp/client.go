package whatsapp

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Client отправляет уведомления о записях через Twilio WhatsApp.
// Уведомления не влияют на результат операции: ошибки логируются и
// возвращаются вызывающему только для метрик.
type Client struct {
	sender  MessageSender
	from    string
	baseURL string
	metrics Metrics
	log     Logger
}

// NewClient создает клиента. При выключенной интеграции сообщения только логируются.
func NewClient(cfg Config, metrics Metrics, log Logger) *Client {
	c := &Client{
		from:    cfg.FromNumber,
		baseURL: cfg.PublicBaseURL,
		metrics: metrics,
		log:     log,
	}
	if cfg.Enabled {
		rest := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
		c.sender = rest.Api
	}
	return c
}

// NewClientWithSender создает клиента поверх произвольного отправителя
func NewClientWithSender(sender MessageSender, from, baseURL string, metrics Metrics, log Logger) *Client {
	return &Client{
		sender:  sender,
		from:    from,
		baseURL: baseURL,
		metrics: metrics,
		log:     log,
	}
}

// Enabled сообщает, отправляются ли сообщения на самом деле
func (c *Client) Enabled() bool {
	return c.sender != nil
}

// NotifyCreated уведомляет клиента и, если задан номер, магазин о новой записи
func (c *Client) NotifyCreated(ctx context.Context, store *domain.Store, a *domain.Appointment) error {
	err := c.send(ctx, Message{Kind: KindCreated, To: a.CustomerPhone, Body: createdMessage(store, a, c.baseURL)})

	if store.NotificationPhone != nil && *store.NotificationPhone != "" {
		if alertErr := c.send(ctx, Message{Kind: KindStoreAlert, To: *store.NotificationPhone, Body: storeAlertMessage(a)}); alertErr != nil && err == nil {
			err = alertErr
		}
	}
	return err
}

// NotifyRescheduled уведомляет клиента о переносе записи
func (c *Client) NotifyRescheduled(ctx context.Context, store *domain.Store, a *domain.Appointment) error {
	return c.send(ctx, Message{Kind: KindRescheduled, To: a.CustomerPhone, Body: rescheduledMessage(store, a, c.baseURL)})
}

// NotifyCancelled уведомляет клиента об отмене записи
func (c *Client) NotifyCancelled(ctx context.Context, store *domain.Store, a *domain.Appointment) error {
	return c.send(ctx, Message{Kind: KindCancelled, To: a.CustomerPhone, Body: cancelledMessage(store, a)})
}

// SendReminder отправляет напоминание о завтрашней записи
func (c *Client) SendReminder(ctx context.Context, store *domain.Store, a *domain.Appointment) error {
	return c.send(ctx, Message{Kind: KindReminder, To: a.CustomerPhone, Body: reminderMessage(store, a, c.baseURL)})
}

func (c *Client) send(ctx context.Context, msg Message) (err error) {
	defer func() { c.metrics.IncNotification(string(msg.Kind), err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validatePhone(msg.To); err != nil {
		c.log.Warn("WhatsApp: skip %s notification: %v", msg.Kind, err)
		return err
	}

	if c.sender == nil {
		c.log.Info("WhatsApp: disabled, %s notification to %s: %s", msg.Kind, msg.To, msg.Body)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + msg.To)
	params.SetFrom("whatsapp:" + c.from)
	params.SetBody(msg.Body)

	resp, err := c.sender.CreateMessage(params)
	if err != nil {
		c.log.Error("WhatsApp: failed to send %s notification to %s: %v", msg.Kind, msg.To, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp != nil && resp.Sid != nil {
		c.log.Info("WhatsApp: %s notification sent to %s, sid=%s", msg.Kind, msg.To, *resp.Sid)
	} else {
		c.log.Info("WhatsApp: %s notification sent to %s", msg.Kind, msg.To)
	}
	return nil
}
