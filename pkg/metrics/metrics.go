package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "table_reservation"

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge

	AssignmentOutcomes *prometheus.CounterVec
	LockConflicts      prometheus.Counter
	SweepProcessed     *prometheus.CounterVec
	RateLimited        prometheus.Counter
}

// New регистрирует метрики в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: constLabels,
		}),
		DBInUse: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: constLabels,
		}),
		DBIdle: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: constLabels,
		}),
		AssignmentOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "assignment_outcomes_total",
			Help:        "Table assignment results by matched rule",
			ConstLabels: constLabels,
		}, []string{"rule"}),
		LockConflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "table_lock_conflicts_total",
			Help:        "Lock claims rejected because another holder owns the table",
			ConstLabels: constLabels,
		}),
		SweepProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "sweep_records_processed_total",
			Help:        "Records transitioned by periodic sweeps",
			ConstLabels: constLabels,
		}, []string{"sweep"}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "rate_limited_requests_total",
			Help:        "Requests rejected by the rate limiter",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveAssignment учитывает результат подбора стола. nil-safe.
func (m *Metrics) ObserveAssignment(rule string) {
	if m == nil {
		return
	}
	m.AssignmentOutcomes.WithLabelValues(rule).Inc()
}

// ObserveLockConflict nil-safe
func (m *Metrics) ObserveLockConflict() {
	if m == nil {
		return
	}
	m.LockConflicts.Inc()
}

// ObserveSweep nil-safe
func (m *Metrics) ObserveSweep(sweep string, processed int) {
	if m == nil {
		return
	}
	m.SweepProcessed.WithLabelValues(sweep).Add(float64(processed))
}

// ObserveRateLimited nil-safe
func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}
