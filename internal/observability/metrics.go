package observability

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartcity/streetlights/internal/domain"
)

// Metrics collects dataset cache and HTTP metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	loadDuration      *prometheus.HistogramVec
	loadErrors        *prometheus.CounterVec
	assetsLoaded      prometheus.Gauge
	rowsSkipped       prometheus.Gauge
	rowDefects        *prometheus.GaugeVec
}

// NewMetrics creates the collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dataset_cache_hits_total",
			Help: "Requests served from the cached asset table.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dataset_cache_misses_total",
			Help: "Requests that had to load the asset table.",
		}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Histogram of asset table load durations by source.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		loadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Failed asset table loads by source.",
		}, []string{"source"}),
		assetsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_assets",
			Help: "Assets in the cached table.",
		}),
		rowsSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_rows_skipped",
			Help: "Rows skipped during the last load.",
		}),
		rowDefects: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dataset_row_defects",
			Help: "Rows kept with a degraded field during the last load, by field.",
		}, []string{"field"}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.cacheHits,
		m.cacheMisses,
		m.loadDuration,
		m.loadErrors,
		m.assetsLoaded,
		m.rowsSkipped,
		m.rowDefects,
	)

	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records the count and duration of every request by route
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		route := c.Route().Path
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// DatasetLoaded records a successful load
func (m *Metrics) DatasetLoaded(source string, d time.Duration, assets int, report domain.LoadReport) {
	if m == nil {
		return
	}
	m.loadDuration.WithLabelValues(source).Observe(d.Seconds())
	m.assetsLoaded.Set(float64(assets))
	m.rowsSkipped.Set(float64(report.Skipped))
	m.rowDefects.WithLabelValues("date").Set(float64(report.BadDates))
	m.rowDefects.WithLabelValues("wattage").Set(float64(report.BadWattage))
	m.rowDefects.WithLabelValues("geometry").Set(float64(report.BadGeometry))
}

func (m *Metrics) DatasetLoadFailed(source string) {
	if m == nil {
		return
	}
	m.loadErrors.WithLabelValues(source).Inc()
}
