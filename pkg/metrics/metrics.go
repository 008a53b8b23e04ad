// Package metrics Prometheus-метрики сервиса
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
type Metrics struct {
	registry prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge

	availabilityRequests *prometheus.CounterVec
	slotsReturned        prometheus.Histogram
	bookingConflicts     prometheus.Counter
	bookingTransitions   *prometheus.CounterVec
}

// New регистрирует метрики в глобальном регистре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer, serviceName)
}

// NewWithRegistry регистрирует метрики в переданном регистре
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		registry: gatherer,
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),
		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: labels,
		}, []string{"operation"}),
		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: labels,
		}),
		dbInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections in use",
			ConstLabels: labels,
		}),
		dbIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: labels,
		}),
		availabilityRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_requests_total",
			Help:        "Availability computations by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		slotsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "availability_slots_returned",
			Help:        "Number of start times returned per availability request",
			Buckets:     []float64{0, 1, 5, 10, 20, 40, 80},
			ConstLabels: labels,
		}),
		bookingConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts rejected because the slot was taken",
			ConstLabels: labels,
		}),
		bookingTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking status transitions",
			ConstLabels: labels,
		}, []string{"to"}),
	}
}

// Handler возвращает http.Handler для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
}

// ObserveAvailability фиксирует результат расчета доступности
// outcome: ok, on_leave, closed, fail_closed
func (m *Metrics) ObserveAvailability(outcome string, slots int) {
	m.availabilityRequests.WithLabelValues(outcome).Inc()
	m.slotsReturned.Observe(float64(slots))
}

// IncBookingConflict фиксирует отказ в бронировании из-за занятого слота
func (m *Metrics) IncBookingConflict() {
	m.bookingConflicts.Inc()
}

// IncBookingTransition фиксирует смену статуса бронирования
func (m *Metrics) IncBookingTransition(to string) {
	m.bookingTransitions.WithLabelValues(to).Inc()
}
