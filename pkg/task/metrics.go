package task

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runbook_tasks_total",
			Help: "Total number of executed tasks by outcome",
		},
		[]string{"status"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "runbook_task_duration_seconds",
			Help:    "Duration of task execution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	expressionFaults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "runbook_expression_faults_total",
		Help: "Total expression evaluation faults captured into state",
	})
)

// recordTask records metrics for one executed task.
func recordTask(status Status, duration time.Duration) {
	tasksTotal.WithLabelValues(string(status)).Inc()
	taskDuration.WithLabelValues(string(status)).Observe(duration.Seconds())
}
