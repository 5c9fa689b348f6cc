package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schooladmin", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"route", "status"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schooladmin", Name: "handler_errors_total", Help: "Handler errors",
	})
	InvoicesGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schooladmin", Name: "invoices_generated_total", Help: "Invoices created by the monthly generator",
	})
	InvoicesUpdated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schooladmin", Name: "invoices_updated_total", Help: "Invoices overwritten by the monthly generator",
	})
	InvoicesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schooladmin", Name: "invoices_skipped_total", Help: "Invoices left untouched by the monthly generator",
	})
	ExamSessionsPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schooladmin", Name: "exam_sessions_placed_total", Help: "Sessions placed by the auto scheduler",
	})
	ExamSubjectsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schooladmin", Name: "exam_subjects_skipped_total", Help: "Subjects the auto scheduler could not place",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "schooladmin", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests, HandlerErrors,
		InvoicesGenerated, InvoicesUpdated, InvoicesSkipped,
		ExamSessionsPlaced, ExamSubjectsSkipped,
		DBPing,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
