package supervisor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var crashesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mastereditor_crashes",
	Help: "Number of unhandled errors caught by the supervisor loop",
})

var megathreadsPosted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "mastereditor_megathreads_posted",
	Help: "Number of monthly feedback megathreads posted",
})
