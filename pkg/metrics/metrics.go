package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	DBConnectionsOpen  *prometheus.GaugeVec
	DBConnectionsInUse *prometheus.GaugeVec
	DBConnectionsIdle  *prometheus.GaugeVec

	SweepBookingsCancelled prometheus.Counter
	SweepBookingsFailed    prometheus.Counter
	SweepRunsTotal         prometheus.Counter
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SweepBookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "sweep_bookings_cancelled_total",
			Help:        "Total number of stale pending bookings cancelled by the expiry sweeper",
			ConstLabels: constLabels,
		}),

		SweepBookingsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "sweep_bookings_failed_total",
			Help:        "Total number of bookings the expiry sweeper failed to cancel",
			ConstLabels: constLabels,
		}),

		SweepRunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "sweep_runs_total",
			Help:        "Total number of expiry sweep runs",
			ConstLabels: constLabels,
		}),
	}
}

// IncSweepRuns инкрементирует счётчик прогонов sweeper'а
func (m *Metrics) IncSweepRuns() {
	m.SweepRunsTotal.Inc()
}

// AddSweepCancelled добавляет количество отменённых sweeper'ом бронирований
func (m *Metrics) AddSweepCancelled(n int) {
	m.SweepBookingsCancelled.Add(float64(n))
}

// AddSweepFailed добавляет количество неудавшихся отмен
func (m *Metrics) AddSweepFailed(n int) {
	m.SweepBookingsFailed.Add(float64(n))
}
