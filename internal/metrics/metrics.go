package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MissionsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dailyquest_missions_generated_total",
			Help: "Total number of daily missions generated",
		},
	)

	MissionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dailyquest_missions_completed_total",
			Help: "Total number of daily missions that reached complete",
		},
	)

	// AnswersSubmitted is labelled by result: correct, incorrect, already_complete.
	AnswersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dailyquest_answers_submitted_total",
			Help: "Total number of answer submissions",
		},
		[]string{"result"},
	)

	MissionsArchived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dailyquest_missions_archived_total",
			Help: "Total number of missions archived by the sweep",
		},
	)

	ArchiveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dailyquest_archive_failures_total",
			Help: "Total number of missions the sweep failed to save",
		},
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dailyquest_sweep_duration_seconds",
			Help:    "Time spent running one archival sweep",
			Buckets: prometheus.DefBuckets,
		},
	)

	PracticeSessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dailyquest_practice_sessions_completed_total",
			Help: "Total number of completed practice sessions",
		},
	)
)

// Handler exposes the default registry for gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
