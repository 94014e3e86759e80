package metrics

import "github.com/prometheus/client_golang/prometheus"

// SearchesTotal counts entity searches by outcome. Labels: entity
// (insights, credentials), status (ok, error).
var SearchesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "webcore",
		Name:      "searches_total",
		Help:      "Total number of entity searches",
	},
	[]string{"entity", "status"},
)

func init() {
	prometheus.MustRegister(SearchesTotal)
}
