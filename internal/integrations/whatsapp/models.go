package whatsapp

// Kind тип уведомления, используется как label метрики
type Kind string

const (
	KindCreated     Kind = "created"
	KindRescheduled Kind = "rescheduled"
	KindCancelled   Kind = "cancelled"
	KindReminder    Kind = "reminder"
	KindStoreAlert  Kind = "store_alert"
)

// Config настройки клиента
type Config struct {
	Enabled       bool
	AccountSID    string
	AuthToken     string
	FromNumber    string // E.164, без префикса whatsapp:
	PublicBaseURL string // Базовый адрес страницы записи для клиента
}

// Message исходящее сообщение
type Message struct {
	Kind Kind
	To   string
	Body string
}
