package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	ReservationsTotal *prometheus.CounterVec
	SlotsListedTotal  *prometheus.CounterVec
	NotificationsSent *prometheus.CounterVec
}

// New создает метрики и регистрирует их в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в указанном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections to the database",
			ConstLabels: constLabels,
		}, []string{}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),
		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_reservations_total",
			Help:        "Slot reservation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		SlotsListedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "available_slots_listed_total",
			Help:        "Number of available slots returned to clients",
			ConstLabels: constLabels,
		}, []string{}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_sent_total",
			Help:        "WhatsApp notifications by kind and status",
			ConstLabels: constLabels,
		}, []string{"kind", "status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBWaitCount,
		m.ReservationsTotal,
		m.SlotsListedTotal,
		m.NotificationsSent,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncReservation фиксирует исход попытки резервирования слота.
// Безопасно вызывать на nil (метрики выключены).
func (m *Metrics) IncReservation(operation, outcome string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(operation, outcome).Inc()
}

// AddSlotsListed увеличивает счетчик выданных слотов
func (m *Metrics) AddSlotsListed(count int) {
	if m == nil {
		return
	}
	m.SlotsListedTotal.WithLabelValues().Add(float64(count))
}

// IncNotification фиксирует отправку уведомления
func (m *Metrics) IncNotification(kind string, err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.NotificationsSent.WithLabelValues(kind, status).Inc()
}
