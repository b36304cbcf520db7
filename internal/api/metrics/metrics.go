// Package metrics defines and registers all custom Prometheus metrics for the
// daily tracker API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// TasksCreatedTotal counts daily submissions that persisted successfully.
// Label:
//   - resource_type: "Delivery" or "Training"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of daily task submissions created, by resource type.",
	},
	[]string{"resource_type"},
)

// RemindersSentTotal counts reminder emails that were handed to the provider.
var RemindersSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_sent_total",
		Help:      "Total number of reminder emails successfully sent.",
	},
)

// RemindersFailedTotal counts reminder emails that exhausted their retries.
var RemindersFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_failed_total",
		Help:      "Total number of reminder emails dropped after retrying.",
	},
)

// NotificationsPublishedTotal counts notifications recorded and broadcast.
var NotificationsPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of dashboard notifications recorded.",
	},
)

// WebsocketClients tracks the number of currently connected live clients.
var WebsocketClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_clients",
		Help:      "Current number of connected websocket clients.",
	},
)
