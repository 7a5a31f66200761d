package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ToggleTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engagement_toggle_total",
		Help: "Number of membership toggles, by relation and resulting state",
	}, []string{"relation", "state"})

	HistoryWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "history_write_failures_total",
		Help: "Best-effort history appends that failed after a successful toggle",
	})

	HistoryTasksDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "history_tasks_dropped_total",
		Help: "History events dropped because the worker buffer was full",
	})

	SyncTasksDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engagement_sync_tasks_dropped_total",
		Help: "Membership changes dropped because the sync worker buffer was full",
	})

	SyncFlushFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engagement_sync_flush_failures_total",
		Help: "Failed reconciliation flushes to the database",
	})
)

// MustRegister registers all collectors on the given registerer.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		ToggleTotal,
		HistoryWriteFailures,
		HistoryTasksDropped,
		SyncTasksDropped,
		SyncFlushFailures,
	)
}
