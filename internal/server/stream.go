package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/jarvishud/internal/logger"
	"github.com/ayusman/jarvishud/internal/metrics"
	"github.com/ayusman/jarvishud/internal/overlay"
)

// StreamInterval is the delay between MJPEG frames (~15 FPS).
const StreamInterval = 66 * time.Millisecond

// StreamHandler serves the composited HUD frames as MJPEG.
type StreamHandler struct {
	view     View
	metrics  *metrics.Metrics
	interval time.Duration
}

// NewStreamHandler creates a StreamHandler over view. metrics may be nil.
func NewStreamHandler(view View, m *metrics.Metrics) *StreamHandler {
	return &StreamHandler{view: view, metrics: m, interval: StreamInterval}
}

// ServeHTTP streams frames until the client goes away.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	if h.metrics != nil {
		h.metrics.Clients.Inc()
		defer h.metrics.Clients.Dec()
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		frame, ok := h.view.Frame()
		if !ok {
			frame.Close()
			continue
		}
		data, err := overlay.EncodeJPEG(frame)
		frame.Close()
		if err != nil {
			logger.Debug("server", "stream: %v", err)
			continue
		}

		if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(data)); err != nil {
			return
		}
		if _, err := w.Write(data); err != nil {
			return
		}
		if _, err := fmt.Fprint(w, "\r\n"); err != nil {
			return
		}

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
