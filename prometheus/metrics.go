package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_list_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Responses by status category (2xx, 3xx, 4xx, 5xx)
	StatusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_list_http_status_category_total",
			Help: "Total number of responses by status category",
		},
		[]string{"category", "method", "endpoint"},
	)

	// PIN issuance counter
	PinIssuedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_list_pins_issued_total",
			Help: "Total number of self-service PINs issued",
		},
		[]string{"trigger"}, // trigger can be "registration", "reset", "admin"
	)

	// Self-service login attempts
	LoginAttemptCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_list_self_service_logins_total",
			Help: "Total number of self-service login attempts",
		},
		[]string{"result"}, // result can be "success", "failure"
	)

	// Mail dispatch counter
	MailCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_list_mails_total",
			Help: "Total number of mails dispatched",
		},
		[]string{"kind", "result"},
	)

	// Gallery upload counter
	UploadCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_list_gallery_uploads_total",
			Help: "Total number of gallery upload files by result",
		},
		[]string{"result"}, // result can be "accepted", "invalid_type", "too_large", "failed"
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_list_auth_errors_total",
			Help: "Total number of admin authentication errors",
		},
		[]string{"type"}, // type can be "missing_token", "invalid_token", "forbidden", "invalid_password" etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "employee_list_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "employee_list_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "employee_list_info",
			Help: "Information about the employee list service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(StatusCategoryCounter)
	prometheus.MustRegister(PinIssuedCounter)
	prometheus.MustRegister(LoginAttemptCounter)
	prometheus.MustRegister(MailCounter)
	prometheus.MustRegister(UploadCounter)
	prometheus.MustRegister(AuthErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations; use as
// defer TrackDBOperation("employee_get")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			StatusCategoryCounter.With(prometheus.Labels{
				"category": statusCategory(c.Response().Status),
				"method":   method,
				"endpoint": endpoint,
			}).Inc()

			return err
		}
	}
}

func statusCategory(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// RecordAuthError records an admin authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordPinIssued records a freshly issued PIN
func RecordPinIssued(trigger string) {
	PinIssuedCounter.With(prometheus.Labels{"trigger": trigger}).Inc()
}

// RecordLogin records a self-service login attempt
func RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	LoginAttemptCounter.With(prometheus.Labels{"result": result}).Inc()
}

// RecordMail records a mail dispatch outcome
func RecordMail(kind string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	MailCounter.With(prometheus.Labels{"kind": kind, "result": result}).Inc()
}

// RecordUpload records the outcome of one uploaded gallery file
func RecordUpload(result string) {
	UploadCounter.With(prometheus.Labels{"result": result}).Inc()
}
