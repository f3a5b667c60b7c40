package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brewguide_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brewguide_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})
)

// Inventory metrics (gauges updated periodically by collector)
var (
	BeansInStock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brewguide_beans_in_stock",
		Help: "Number of beans with remaining quantity",
	})

	RemainingGramsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brewguide_remaining_grams_total",
		Help: "Total remaining coffee across all beans in grams",
	})

	BeansByPhase = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "brewguide_beans_by_phase",
		Help: "Number of in-stock beans by freshness phase",
	}, []string{"phase"})

	NotesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brewguide_notes_total",
		Help: "Total number of journal entries",
	})

	MethodsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brewguide_methods_total",
		Help: "Total number of saved brewing methods",
	})
)

// Event counters (incremented on occurrence)
var (
	QuickDecrementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brewguide_quick_decrements_total",
		Help: "Total number of quick-decrement operations",
	})

	CapacityAdjustmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brewguide_capacity_adjustments_total",
		Help: "Total number of capacity adjustments",
	})

	NotesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brewguide_notes_created_total",
		Help: "Total number of journal entries created",
	}, []string{"source"})

	MethodRescalesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brewguide_method_rescales_total",
		Help: "Total number of method water rescales",
	})
)

// NormalizePath reduces high-cardinality path labels by replacing
// dynamic segments with placeholders. This keeps the metric label
// space bounded.
func NormalizePath(path string) string {
	segments := splitPath(path)
	if len(segments) < 2 || segments[0] != "api" {
		return path
	}

	switch segments[1] {
	case "beans":
		if len(segments) == 3 {
			return "/api/beans/:id"
		}
		if len(segments) == 4 {
			return "/api/beans/:id/" + segments[3]
		}
	case "methods":
		if len(segments) == 3 {
			if segments[2] == "calculate" {
				return path
			}
			return "/api/methods/:id"
		}
		if len(segments) == 4 {
			return "/api/methods/:id/" + segments[3]
		}
	case "notes":
		if len(segments) == 3 {
			if segments[2] == "export" {
				return path
			}
			return "/api/notes/:id"
		}
	case "settings":
		if len(segments) == 3 {
			return "/api/settings/:key"
		}
	}

	return path
}

func splitPath(path string) []string {
	// Skip leading slash
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	// Split on /
	var segments []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	if start < len(path) {
		segments = append(segments, path[start:])
	}
	return segments
}
