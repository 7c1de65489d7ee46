package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labbook_wizard_transitions_total",
			Help: "Booking wizard state transitions",
		},
		[]string{"from", "to"},
	)

	WizardValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labbook_wizard_validation_failures_total",
			Help: "Step validations that blocked advancing",
		},
		[]string{"step"},
	)

	WizardsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "labbook_wizards_open",
			Help: "Booking wizards currently open",
		},
	)

	StaleSlotResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "labbook_stale_slot_responses_total",
			Help: "Time-slot responses dropped because the date changed or the wizard closed",
		},
	)

	BookingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labbook_booking_submissions_total",
			Help: "Booking submissions by result",
		},
		[]string{"result"},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labbook_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"result"},
	)

	ReminderTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labbook_reminder_tasks_total",
			Help: "Booking reminder tasks by outcome",
		},
		[]string{"outcome"},
	)
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labbook_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "labbook_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)
)
