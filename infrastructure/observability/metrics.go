package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Global metrics instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Session metrics
	ActiveSessions prometheus.Gauge
	UIEvents       *prometheus.CounterVec

	// Snapshot metrics
	GraphNodes          prometheus.Gauge
	GraphEdges          prometheus.Gauge
	SnapshotLoadSeconds prometheus.Gauge
	LayoutSeconds       prometheus.Gauge
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Use singleton pattern to avoid duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	activeSessions := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live browser sessions",
		},
	)

	uiEvents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ui_events_total",
			Help:      "Total number of UI events handled, by type",
		},
		[]string{"type"},
	)

	graphNodes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes in the loaded graph snapshot",
		},
	)

	graphEdges := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of edges in the loaded graph snapshot",
		},
	)

	snapshotLoad := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_load_seconds",
			Help:      "Duration of the startup database snapshot load",
		},
	)

	layoutSeconds := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_seconds",
			Help:      "Duration of the startup layout computation",
		},
	)

	registry.MustRegister(
		httpRequests, httpDuration,
		activeSessions, uiEvents,
		graphNodes, graphEdges, snapshotLoad, layoutSeconds,
	)

	globalCollector = &Collector{
		registry:            registry,
		HTTPRequests:        httpRequests,
		HTTPDuration:        httpDuration,
		ActiveSessions:      activeSessions,
		UIEvents:            uiEvents,
		GraphNodes:          graphNodes,
		GraphEdges:          graphEdges,
		SnapshotLoadSeconds: snapshotLoad,
		LayoutSeconds:       layoutSeconds,
	}
	return globalCollector
}

// Handler returns the HTTP handler exposing the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records a completed HTTP request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUIEvent counts a handled hover/tap/search event.
func (c *Collector) RecordUIEvent(eventType string) {
	c.UIEvents.WithLabelValues(eventType).Inc()
}

// RecordSnapshot records the size and timings of the loaded snapshot.
func (c *Collector) RecordSnapshot(nodes, edges int, load, layout time.Duration) {
	c.GraphNodes.Set(float64(nodes))
	c.GraphEdges.Set(float64(edges))
	c.SnapshotLoadSeconds.Set(load.Seconds())
	c.LayoutSeconds.Set(layout.Seconds())
}
