package http

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var completionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habitzen",
	Name:      "completion_toggles_total",
	Help:      "Complete and uncomplete requests, by whether the stored state changed.",
}, []string{"action", "changed"})

func countToggle(action string, changed bool) {
	completionToggles.WithLabelValues(action, strconv.FormatBool(changed)).Inc()
}
