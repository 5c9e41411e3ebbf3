package restclient

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ce1sus_console",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Total number of calls to the ce1sus REST backend by method, route and status.",
	}, []string{"method", "route", "status"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ce1sus_console",
		Subsystem: "backend",
		Name:      "latency_seconds",
		Help:      "Latency distribution of calls to the ce1sus REST backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func recordMetrics(method, path string, status int, latency time.Duration) {
	route := routeLabel(path)
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}

// routeLabel collapses resource identifiers so that label cardinality stays
// bounded: /event/abc/comment/def becomes /event/{id}/comment/{id}.
func routeLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 1; i < len(segments); i++ {
		switch segments[i-1] {
		case "event", "comment", "group":
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}
