package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/jarvishud/internal/capture"
	"github.com/ayusman/jarvishud/internal/channel"
	"github.com/ayusman/jarvishud/internal/hud"
	"github.com/ayusman/jarvishud/internal/logger"
	"github.com/ayusman/jarvishud/internal/overlay"
)

// Run mounts the HUD and blocks until ctx is cancelled. It acquires the
// camera and dials the backend once; both are released before Run returns,
// whatever the exit path.
//
// All channel events and frame ticks are handled on the calling goroutine,
// one at a time. A failed dial or a closed channel leaves the HUD
// disconnected; the video keeps updating until ctx is done.
func (h *HUD) Run(ctx context.Context) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return ErrRunning
	}
	h.running = true
	h.mu.Unlock()

	state := hud.NewState(uuid.NewString())
	h.publish(state)
	logger.Info("app", "mounted session %s", state.Session)

	video := capture.NewVideo()
	renderer := overlay.NewRenderer(overlay.NewSurface())
	h.mu.Lock()
	h.video = video
	h.renderer = renderer
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.video = nil
		h.renderer = nil
		h.running = false
		h.mu.Unlock()
		video.Close()
		renderer.Close()
		logger.Info("app", "unmounted session %s", state.Session)
	}()

	if capture.Acquire(h.config.Camera) {
		video.Bind(h.config.Camera)
		defer func() {
			if err := h.config.Camera.Close(); err != nil {
				logger.Warn("app", "closing camera: %v", err)
			}
		}()
	}

	var events <-chan channel.Event
	ch, err := channel.Dial(ctx, h.config.Endpoint, channel.Options{HandshakeTimeout: h.config.HandshakeTimeout})
	if err != nil {
		logger.Warn("app", "backend unavailable: %v", err)
	} else {
		defer func() {
			if err := ch.Close(); err != nil {
				logger.Debug("app", "closing channel: %v", err)
			}
			if state.Connected {
				h.disconnected(state)
			}
		}()
		events = ch.Events()
	}

	ticker := time.NewTicker(time.Second / time.Duration(h.config.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			h.handleEvent(state, ev, video)

		case <-ticker.C:
			if !video.Bound() {
				continue
			}
			if err := video.Update(); err != nil {
				logger.Debug("app", "reading frame: %v", err)
				continue
			}
			h.metrics.Frames.Inc()
		}
	}
}

func (h *HUD) handleEvent(state *hud.State, ev channel.Event, video *capture.Video) {
	onGesture, onConnection := h.callbacks()

	switch e := ev.(type) {
	case channel.Opened:
		state.MarkConnected()
		h.publish(state)
		h.metrics.SetConnected(true)
		if onConnection != nil {
			onConnection(true)
		}

	case channel.Received:
		h.handleMessage(state, e.Data, video, onGesture)

	case channel.Closed:
		if e.Err != nil {
			logger.Warn("app", "channel closed: %v", e.Err)
		} else {
			logger.Info("app", "channel closed")
		}
		h.disconnected(state)
	}
}

func (h *HUD) disconnected(state *hud.State) {
	state.MarkDisconnected()
	h.publish(state)
	h.metrics.SetConnected(false)
	if _, onConnection := h.callbacks(); onConnection != nil {
		onConnection(false)
	}
}

func (h *HUD) handleMessage(state *hud.State, data []byte, video *capture.Video, onGesture func(string)) {
	msg, err := hud.ParseMessage(data)
	if err != nil {
		if errors.Is(err, hud.ErrMalformed) {
			h.metrics.Malformed.Inc()
		}
		logger.Warn("app", "dropping message: %v", err)
		return
	}
	h.metrics.Message(string(msg.Kind()))

	switch m := msg.(type) {
	case hud.StatusMessage:
		logger.Debug("app", "backend status: %s", m.Status)
	case hud.BackendError:
		logger.Warn("app", "backend error: %s", m.Error)
	case hud.UnknownMessage:
		logger.Debug("app", "ignoring message type %q", m.Type)
	}

	effect := state.Apply(msg)
	if effect.Redraw {
		h.mu.RLock()
		renderer := h.renderer
		h.mu.RUnlock()
		if renderer.Draw(effect.Landmarks, video) {
			h.metrics.Redraws.Inc()
		}
	}
	if effect.Changed {
		h.publish(state)
		if g, ok := msg.(hud.GestureMessage); ok && onGesture != nil {
			onGesture(g.Gesture)
		}
	}
}
