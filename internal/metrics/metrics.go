package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SMSAttempts counts reminder deliveries by outcome
	SMSAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacation_manager_sms_attempts_total",
			Help: "Number of vacation reminder SMS attempts by status",
		},
		[]string{"status"},
	)

	SkippedCandidates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacation_manager_reminder_skipped_total",
			Help: "Candidate vacations skipped during a sweep, by reason",
		},
		[]string{"reason"},
	)

	Sweeps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacation_manager_sweeps_total",
			Help: "Number of notification sweeps by result",
		},
		[]string{"result"},
	)

	SweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vacation_manager_sweep_duration_seconds",
			Help:    "Duration of notification sweeps",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScheduledSlots = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vacation_manager_scheduled_slots",
			Help: "Number of daily notification timers currently registered",
		},
	)
)

func Init() {
	prometheus.MustRegister(SMSAttempts, SkippedCandidates, Sweeps, SweepDuration, ScheduledSlots)
}
