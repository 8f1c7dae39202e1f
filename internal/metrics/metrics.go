package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "lead_studio_http_requests_total", Help: "HTTP requests"},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lead_studio_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	ContentGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "lead_studio_content_generated_total", Help: "Content drafts generated"},
		[]string{"platform", "tone"},
	)
	ContentPackagesSavedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "lead_studio_content_packages_saved_total", Help: "Content packages saved"},
	)
	LeadsCapturedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "lead_studio_leads_captured_total", Help: "Leads captured from landing pages"},
	)
	LeadStatusUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "lead_studio_lead_status_updates_total", Help: "Lead status writes by new status"},
		[]string{"status"},
	)
	NotificationsForwardedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "lead_studio_notifications_forwarded_total", Help: "Events forwarded to the notify webhook"},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration,
		ContentGeneratedTotal, ContentPackagesSavedTotal,
		LeadsCapturedTotal, LeadStatusUpdatesTotal,
		NotificationsForwardedTotal,
	)
}
