// Package metrics exposes HUD counters in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayusman/jarvishud/internal/hud"
)

// Metrics holds the HUD collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Messages  *prometheus.CounterVec
	Malformed prometheus.Counter
	Redraws   prometheus.Counter
	Frames    prometheus.Counter
	Connected prometheus.Gauge
	Clients   prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hud_messages_total",
			Help: "Inbound channel messages by type",
		}, []string{"type"}),
		Malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hud_messages_malformed_total",
			Help: "Inbound payloads rejected as malformed",
		}),
		Redraws: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hud_landmark_redraws_total",
			Help: "Landmark redraws performed",
		}),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hud_frames_total",
			Help: "Camera frames bound to the video surface",
		}),
		Connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hud_channel_connected",
			Help: "Channel state (0=disconnected, 1=connected)",
		}),
		Clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hud_stream_clients",
			Help: "Active MJPEG stream clients",
		}),
	}

	m.registry.MustRegister(m.Messages, m.Malformed, m.Redraws, m.Frames, m.Connected, m.Clients)
	return m
}

// Labels for messages outside the known kinds.
const (
	KindNone    = "none"
	KindUnknown = "unknown"
)

var knownKinds = map[string]bool{
	string(hud.KindGesture):   true,
	string(hud.KindLandmarks): true,
	string(hud.KindStatus):    true,
}

// Message counts one inbound message of the given type. Types other than
// the known kinds share the "unknown" label; untyped payloads are "none".
func (m *Metrics) Message(kind string) {
	if m == nil {
		return
	}
	switch {
	case kind == "":
		kind = KindNone
	case !knownKinds[kind]:
		kind = KindUnknown
	}
	m.Messages.WithLabelValues(kind).Inc()
}

// SetConnected records the channel state.
func (m *Metrics) SetConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.Connected.Set(1)
	} else {
		m.Connected.Set(0)
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
