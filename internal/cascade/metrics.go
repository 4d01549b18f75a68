package cascade

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	duplicationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_cascade_duplications_total",
		Help: "Subtree duplications, by scope level and outcome.",
	}, []string{"scope", "outcome"})

	deletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fittrack_cascade_deletes_total",
		Help: "Cascade deletions, by scope level and outcome.",
	}, []string{"scope", "outcome"})

	batchCommitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fittrack_cascade_batch_commits_total",
		Help: "Write batches committed successfully.",
	})

	batchCommitFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fittrack_cascade_batch_commit_failures_total",
		Help: "Write batches that failed to commit.",
	})
)
