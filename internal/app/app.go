// Package app is the HUD component: it owns the camera, the backend channel
// and the overlay for the lifetime of one Run call.
package app

import (
	"errors"
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/jarvishud/internal/capture"
	"github.com/ayusman/jarvishud/internal/channel"
	"github.com/ayusman/jarvishud/internal/hud"
	"github.com/ayusman/jarvishud/internal/metrics"
	"github.com/ayusman/jarvishud/internal/overlay"
)

// ErrRunning is returned when Run is called on a HUD that is already mounted.
var ErrRunning = errors.New("hud is already running")

// Config holds configuration options for the HUD.
type Config struct {
	// Endpoint overrides channel.DefaultEndpoint. Only tests set it.
	Endpoint         string
	Camera           capture.Camera
	CameraID         int
	FPS              int
	HandshakeTimeout time.Duration
	Metrics          *metrics.Metrics
}

// HUD displays the camera feed with landmark markers, the latest gesture and
// the event log received from the detection backend.
type HUD struct {
	config  Config
	metrics *metrics.Metrics

	mu           sync.RWMutex
	running      bool
	snapshot     hud.Snapshot
	video        *capture.Video
	renderer     *overlay.Renderer
	onGesture    func(gesture string)
	onConnection func(connected bool)
}

// New creates a HUD. Nothing is acquired until Run.
func New(config Config) *HUD {
	if config.Endpoint == "" {
		config.Endpoint = channel.DefaultEndpoint
	}
	if config.Camera == nil {
		config.Camera = capture.NewCamera(config.CameraID)
	}
	if config.FPS <= 0 {
		config.FPS = capture.DefaultFPS
	}
	if config.FPS > capture.MaxFPS {
		config.FPS = capture.MaxFPS
	}
	config.Camera.SetFPS(config.FPS)
	if config.HandshakeTimeout <= 0 {
		config.HandshakeTimeout = 5 * time.Second
	}
	if config.Metrics == nil {
		config.Metrics = metrics.New()
	}

	return &HUD{
		config:   config,
		metrics:  config.Metrics,
		snapshot: hud.NewState("").Snapshot(),
	}
}

// OnGesture registers a callback run after each gesture event is applied.
func (h *HUD) OnGesture(fn func(gesture string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onGesture = fn
}

// OnConnection registers a callback run when the channel opens or closes.
func (h *HUD) OnConnection(fn func(connected bool)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConnection = fn
}

// Snapshot returns the latest published display state.
func (h *HUD) Snapshot() hud.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot
}

// Markers returns the marker positions of the last landmark redraw.
func (h *HUD) Markers() []image.Point {
	h.mu.RLock()
	r := h.renderer
	h.mu.RUnlock()
	if r == nil {
		return nil
	}
	return r.Markers()
}

// Frame returns the current camera frame with markers and gesture label
// composited. It reports false when no frame is available. The caller owns
// the returned Mat.
func (h *HUD) Frame() (gocv.Mat, bool) {
	h.mu.RLock()
	video, renderer, gesture := h.video, h.renderer, h.snapshot.Gesture
	h.mu.RUnlock()

	if video == nil || renderer == nil {
		return gocv.NewMat(), false
	}
	frame, ok := video.Snapshot()
	if !ok {
		return frame, false
	}
	defer frame.Close()

	return renderer.Compose(frame, gesture), true
}

// Metrics returns the HUD's collectors.
func (h *HUD) Metrics() *metrics.Metrics {
	return h.metrics
}

func (h *HUD) publish(state *hud.State) {
	snap := state.Snapshot()
	h.mu.Lock()
	h.snapshot = snap
	h.mu.Unlock()
}

func (h *HUD) callbacks() (func(string), func(bool)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.onGesture, h.onConnection
}
