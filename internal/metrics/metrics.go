// Package metrics holds the prometheus collectors of the agent.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kubev2v/action-agent/internal/models"
)

const namespace = "action_agent"

const (
	OutcomeOK = "ok"
)

var (
	// Registry holds the agent collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	liveResources = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "live_resources",
			Help:      "Number of registered resources across sessions.",
		},
	)

	invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "actions",
			Name:      "invocations_total",
			Help:      "Total number of action invocations by outcome.",
		},
		[]string{"component", "action", "outcome"},
	)

	invocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "actions",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of action invocations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"component", "action"},
	)

	events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "processed_total",
			Help:      "Total number of logging events by outcome.",
		},
		[]string{"event", "outcome"},
	)

	lifecycleState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "lifecycle_state",
			Help:      "1 for the current lifecycle state of the event processor.",
		},
		[]string{"state"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		liveResources,
		invocations,
		invocationDuration,
		events,
		lifecycleState,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	SetLifeCycleState(models.LifeCycleInitialized)
}

// Handler exposes the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func SetLiveResources(n int) {
	liveResources.Set(float64(n))
}

// ObserveInvocation records an action invocation. outcome is OutcomeOK or an error kind.
func ObserveInvocation(component, action, outcome string, d time.Duration) {
	invocations.WithLabelValues(component, action, outcome).Inc()
	invocationDuration.WithLabelValues(component, action).Observe(d.Seconds())
}

func ObserveEvent(event models.EventType, outcome string) {
	events.WithLabelValues(string(event), outcome).Inc()
}

func SetLifeCycleState(current models.LifeCycleState) {
	for _, s := range []models.LifeCycleState{
		models.LifeCycleInitialized,
		models.LifeCycleRunStarted,
		models.LifeCycleSuiteStarted,
		models.LifeCycleTestCaseStarted,
	} {
		v := 0.0
		if s == current {
			v = 1
		}
		lifecycleState.WithLabelValues(string(s)).Set(v)
	}
}
