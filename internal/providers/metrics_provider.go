package providers

import (
	"rankwatch/internal/structures"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncNotifications(target string, status int)
	ObserveLeaderboardDuration(duration time.Duration)
	SetCurrentRank(rank int)
	IncHistoryPages()
	ObserveBackupDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	notificationsTotal  *prometheus.CounterVec
	leaderboardDuration prometheus.Histogram
	currentRank         prometheus.Gauge
	historyPages        prometheus.Counter
	backupDuration      prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncNotifications(target string, status int) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.notificationsTotal.WithLabelValues(target, code).Inc()
}

func (m *MetricsProvider) ObserveLeaderboardDuration(duration time.Duration) {
	m.leaderboardDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetCurrentRank(rank int) {
	m.currentRank.Set(float64(rank))
}

func (m *MetricsProvider) IncHistoryPages() {
	m.historyPages.Inc()
}

func (m *MetricsProvider) ObserveBackupDuration(duration time.Duration) {
	m.backupDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rankwatch_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rankwatch_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rankwatch_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rankwatch_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rankwatch_notifications_total",
			Help: "Outbound notifications by target and HTTP status",
		}, []string{"target", "status"}),

		leaderboardDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankwatch_leaderboard_fetch_duration_seconds",
			Help:    "Duration of leaderboard requests in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		currentRank: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rankwatch_current_rank",
			Help: "Last rank read from the leaderboard",
		}),

		historyPages: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rankwatch_history_pages_total",
			Help: "Channel history pages fetched",
		}),

		backupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankwatch_backup_duration_seconds",
			Help:    "Duration of backup writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncNotifications(_ string, _ int)                 {}
func (n *noopMetrics) ObserveLeaderboardDuration(_ time.Duration)       {}
func (n *noopMetrics) SetCurrentRank(_ int)                             {}
func (n *noopMetrics) IncHistoryPages()                                 {}
func (n *noopMetrics) ObserveBackupDuration(_ time.Duration)            {}
