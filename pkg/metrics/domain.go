package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "letterpay"

var HistogramBuckets = []float64{
	// fast (0 - 500ms)
	25, 50, 75, 100, 150, 200, 300, 400, 500,
	// medium (500ms - 2s)
	750, 1000, 1250, 1500, 1750, 2000,
	// slow (2s - 15s)
	2500, 3000, 4000, 5000, 7500, 10000, 15000,
	// long reminder ticks
	30000, 60000, 120000, 300000,
}

var (
	webhookEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "webhook",
		Name:      "events_total",
		Help:      "Gateway webhook events, partitioned by reconciliation action.",
	}, []string{"action"})

	reminders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reminder",
		Name:      "sent_total",
		Help:      "Payment reminders attempted, partitioned by tier and recorded status.",
	}, []string{"tier", "status"})

	reminderTicks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reminder",
		Name:      "ticks_total",
		Help:      "Reminder ticks, partitioned by result.",
	}, []string{"result"})

	reminderTickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "reminder",
		Name:      "tick_duration_ms",
		Help:      "Reminder tick latency in milliseconds.",
		Buckets:   HistogramBuckets,
	})
)

func init() {
	prometheus.MustRegister(webhookEvents, reminders, reminderTicks, reminderTickDuration)
}

func ObserveWebhookEvent(action string) {
	webhookEvents.WithLabelValues(action).Inc()
}

func ObserveReminder(tier, status string) {
	reminders.WithLabelValues(tier, status).Inc()
}

func ObserveReminderTick(result string, start time.Time) {
	reminderTicks.WithLabelValues(result).Inc()
	reminderTickDuration.Observe(MillisecondsSince(start))
}
