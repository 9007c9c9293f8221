package automod

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var submissionsProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mastereditor_submissions_processed",
	Help: "Number of submissions run through the moderation pipeline",
})

var submissionsRemoved = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mastereditor_submissions_removed",
	Help: "Number of submissions removed",
})

var submissionsReported = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mastereditor_submissions_reported",
	Help: "Number of submissions reported for manual review",
})

var submissionsAllowed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mastereditor_submissions_allowed",
	Help: "Number of submissions allowed through",
})
