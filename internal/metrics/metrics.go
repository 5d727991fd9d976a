// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradebook_records_total",
			Help: "Total number of recorded submissions by best grade",
		},
		[]string{"best_grade"},
	)

	ScoreHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gradebook_score",
			Help:    "Distribution of submitted test scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	AdminActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradebook_admin_actions_total",
			Help: "Admin gate checks by action and outcome",
		},
		[]string{"action", "result"},
	)
)

// WriteTextfile dumps the default registry in the node_exporter textfile
// format. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
