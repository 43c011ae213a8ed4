package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finitefield.org/vayu-web/internal/vayu/state"
)

// ShellMetrics exports shell mount and transition counters. It satisfies
// state.Observer.
type ShellMetrics struct {
	registry    *prometheus.Registry
	mounts      prometheus.Counter
	evictions   prometheus.Counter
	active      prometheus.Gauge
	transitions *prometheus.CounterVec
	themes      *prometheus.CounterVec
}

var _ state.Observer = (*ShellMetrics)(nil)

// NewShellMetrics registers the shell collectors on a fresh registry.
func NewShellMetrics() *ShellMetrics {
	reg := prometheus.NewRegistry()
	m := &ShellMetrics{
		registry: reg,
		mounts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vayu",
			Subsystem: "shell",
			Name:      "mounts_total",
			Help:      "Shells mounted by full page loads.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vayu",
			Subsystem: "shell",
			Name:      "evictions_total",
			Help:      "Idle shells evicted by the sweeper.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vayu",
			Subsystem: "shell",
			Name:      "active_mounts",
			Help:      "Shells currently held in memory.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vayu",
			Subsystem: "shell",
			Name:      "events_total",
			Help:      "Shell events by kind and resulting drawer state.",
		}, []string{"event", "sidebar"}),
		themes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vayu",
			Subsystem: "shell",
			Name:      "theme_changes_total",
			Help:      "Theme flips by resulting theme.",
		}, []string{"theme"}),
	}
	reg.MustRegister(m.mounts, m.evictions, m.active, m.transitions, m.themes)
	return m
}

// MountCreated implements state.Observer.
func (m *ShellMetrics) MountCreated() { m.mounts.Inc() }

// Transition implements state.Observer.
func (m *ShellMetrics) Transition(ev state.Event, before, after state.State) {
	sidebar := "closed"
	if after.SidebarOpen {
		sidebar = "open"
	}
	m.transitions.WithLabelValues(ev.String(), sidebar).Inc()
	if before.DarkMode != after.DarkMode {
		label := "light"
		if after.DarkMode {
			label = "dark"
		}
		m.themes.WithLabelValues(label).Inc()
	}
}

// MountsEvicted implements state.Observer.
func (m *ShellMetrics) MountsEvicted(n int) { m.evictions.Add(float64(n)) }

// ActiveMounts implements state.Observer.
func (m *ShellMetrics) ActiveMounts(n int) { m.active.Set(float64(n)) }

// Registry exposes the underlying registry for tests and extra collectors.
func (m *ShellMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *ShellMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
