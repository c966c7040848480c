package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/learning-tracker/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic and tracker events.
// A nil *MetricsService is valid and records nothing.
type MetricsService struct {
	registry             *prometheus.Registry
	handler              http.Handler
	requestDuration      *prometheus.HistogramVec
	requestTotal         *prometheus.CounterVec
	studentsRegistered   prometheus.Counter
	pointAwards          *prometheus.CounterVec
	notificationsSent    *prometheus.CounterVec
	notificationFailures prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	studentsRegistered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracker_students_registered_total",
		Help: "Total students added to the registry",
	})

	pointAwards := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_point_awards_total",
		Help: "Accepted point awards carrying positive points, per course",
	}, []string{"course"})

	notificationsSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_notifications_sent_total",
		Help: "Completion notices delivered, per course",
	}, []string{"course"})

	notificationFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracker_notification_failures_total",
		Help: "Completion notices the delivery channel rejected",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, studentsRegistered, pointAwards, notificationsSent, notificationFailures, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:             registry,
		handler:              handler,
		requestDuration:      requestDuration,
		requestTotal:         requestTotal,
		studentsRegistered:   studentsRegistered,
		pointAwards:          pointAwards,
		notificationsSent:    notificationsSent,
		notificationFailures: notificationFailures,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordStudentRegistered counts one new student.
func (m *MetricsService) RecordStudentRegistered() {
	if m == nil {
		return
	}
	m.studentsRegistered.Inc()
}

// RecordPointAward counts the award once for every course it gives points to.
func (m *MetricsService) RecordPointAward(award models.PointAward) {
	if m == nil {
		return
	}
	for _, course := range models.Courses() {
		if award.Qualifies(course.ID) {
			m.pointAwards.WithLabelValues(course.Name).Inc()
		}
	}
}

// RecordNotification counts a delivery attempt outcome.
func (m *MetricsService) RecordNotification(courseName string, delivered bool) {
	if m == nil {
		return
	}
	if delivered {
		m.notificationsSent.WithLabelValues(courseName).Inc()
		return
	}
	m.notificationFailures.Inc()
}
