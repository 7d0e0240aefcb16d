package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the askroom backend.
var Metrics = struct {
	SubmissionsTotal   *prometheus.CounterVec
	ViolationsTotal    prometheus.Counter
	BlocksTotal        prometheus.Counter
	UpvotesTotal       prometheus.Counter
	SubmissionDuration prometheus.Histogram
	RequestDuration    *prometheus.HistogramVec
	RequestsInFlight   prometheus.Gauge
	DBPoolActive       prometheus.GaugeFunc
	DBPoolIdle         prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askroom_submissions_total",
			Help: "Question submission attempts, by gate outcome.",
		},
		[]string{"outcome"},
	)

	Metrics.ViolationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "askroom_violations_total",
			Help: "Moderation violations recorded against submitters.",
		},
	)

	Metrics.BlocksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "askroom_blocks_total",
			Help: "Submitters blocked for reaching the violation threshold.",
		},
	)

	Metrics.UpvotesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "askroom_upvotes_total",
			Help: "Upvotes applied (idempotent repeats excluded).",
		},
	)

	Metrics.SubmissionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "askroom_submission_gate_duration_seconds",
			Help:    "Duration of one pass through the submission gate, moderation included.",
			Buckets: prometheus.DefBuckets,
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "askroom_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "askroom_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "askroom_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "askroom_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.SubmissionsTotal,
		Metrics.ViolationsTotal,
		Metrics.BlocksTotal,
		Metrics.UpvotesTotal,
		Metrics.SubmissionDuration,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/rooms/") && strings.HasSuffix(path, "/questions"):
		return "/api/rooms/:roomId/questions"
	case strings.HasPrefix(path, "/api/rooms/"):
		return "/api/rooms/:roomId"
	case strings.HasPrefix(path, "/api/questions/"):
		return "/api/questions/:questionId/upvote"
	case strings.HasPrefix(path, "/api/submitters/"):
		return "/api/submitters/:submitterId/cooldown"
	case strings.HasPrefix(path, "/api/admin/questions/"):
		return "/api/admin/questions/:questionId"
	case strings.HasPrefix(path, "/api/admin/submitters/"):
		return "/api/admin/submitters/:submitterId/reset"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
