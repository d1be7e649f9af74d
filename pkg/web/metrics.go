package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "osm_teams",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "The total number of HTTP requests",
}, []string{"method", "status"})
