package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec

	SlotsGenerated      *prometheus.HistogramVec
	ValidationConflicts *prometheus.CounterVec
	DegradedFetches     *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Open database connections.",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Database connections in use.",
		}, []string{"service"}),
		SlotsGenerated: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "slots_generated",
			Help:      "Number of slots produced per availability request.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"kind"}),
		ValidationConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "validation_conflicts_total",
			Help:      "Requested slots rejected by the batch validator.",
		}, []string{"reason"}),
		DegradedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "degraded_fetches_total",
			Help:      "Best-effort collaborator fetches that failed and were treated as empty.",
		}, []string{"source"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.SlotsGenerated,
		m.ValidationConflicts,
		m.DegradedFetches,
	)

	return m
}

// ObserveSlots фиксирует количество сгенерированных слотов
func (m *Metrics) ObserveSlots(kind string, count int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues(kind).Observe(float64(count))
}

// IncConflict увеличивает счётчик отклонённых слотов по причине
func (m *Metrics) IncConflict(reason string) {
	if m == nil {
		return
	}
	m.ValidationConflicts.WithLabelValues(reason).Inc()
}

// IncDegraded увеличивает счётчик деградировавших источников
func (m *Metrics) IncDegraded(source string) {
	if m == nil {
		return
	}
	m.DegradedFetches.WithLabelValues(source).Inc()
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, started time.Time) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func sanitize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(name))
}
