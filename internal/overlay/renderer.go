// Package overlay draws landmark markers and HUD text over camera frames.
package overlay

import (
	"image"
	"image/color"
	"math"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/jarvishud/internal/hud"
)

// Marker appearance.
const (
	MarkerRadius = 4
	MarkerAlpha  = 0.9
)

// MarkerColor is rgba(0,255,0,0.9).
var MarkerColor = color.RGBA{R: 0, G: 255, B: 0, A: uint8(math.Round(MarkerAlpha * 255))}

// FrameSource is the video element markers are drawn against.
type FrameSource interface {
	Ready() bool
	Size() (width, height int)
}

// Surface is a transparent BGRA drawing surface laid over the video.
type Surface struct {
	mat    gocv.Mat
	width  int
	height int
}

// NewSurface creates a zero-sized surface.
func NewSurface() *Surface {
	return &Surface{mat: gocv.NewMat()}
}

// Resize reallocates the surface when the size changed.
func (s *Surface) Resize(width, height int) {
	if s.width == width && s.height == height && !s.mat.Empty() {
		return
	}
	s.mat.Close()
	s.mat = gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC4)
	s.width, s.height = width, height
}

// Clear makes every pixel fully transparent.
func (s *Surface) Clear() {
	if s.mat.Empty() {
		return
	}
	s.mat.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Mat exposes the surface pixels (BGRA).
func (s *Surface) Mat() *gocv.Mat {
	return &s.mat
}

// Close releases the surface memory.
func (s *Surface) Close() error {
	s.width, s.height = 0, 0
	return s.mat.Close()
}

// Renderer redraws the landmark markers of the latest landmarks event.
type Renderer struct {
	mu      sync.RWMutex
	surface *Surface
	markers []image.Point
}

// NewRenderer draws onto surface. A nil surface makes every Draw a no-op.
func NewRenderer(surface *Surface) *Renderer {
	return &Renderer{surface: surface}
}

// Draw resizes the surface to the video's native resolution, clears it and
// draws one filled marker per point. It returns false without touching
// anything when the surface or the video frame is not available.
func (r *Renderer) Draw(points []hud.Landmark, video FrameSource) bool {
	if video == nil || !video.Ready() {
		return false
	}

	width, height := video.Size()
	if width <= 0 || height <= 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surface == nil {
		return false
	}

	r.surface.Resize(width, height)
	r.surface.Clear()

	markers := make([]image.Point, len(points))
	for i, p := range points {
		markers[i] = MarkerPosition(p, width, height)
		gocv.Circle(r.surface.Mat(), markers[i], MarkerRadius, MarkerColor, -1)
	}
	r.markers = markers
	return true
}

// Markers returns the pixel positions drawn by the last Draw.
func (r *Renderer) Markers() []image.Point {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]image.Point, len(r.markers))
	copy(out, r.markers)
	return out
}

// Surface returns the drawing surface, or nil after Close.
func (r *Renderer) Surface() *Surface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.surface
}

// Compose overlays the surface on frame and adds the gesture label. The
// caller owns the returned Mat.
func (r *Renderer) Compose(frame gocv.Mat, gesture string) gocv.Mat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Composite(frame, r.surface, gesture)
}

// Close releases the surface. Later draws are no-ops.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surface == nil {
		return nil
	}
	err := r.surface.Close()
	r.surface = nil
	r.markers = nil
	return err
}

// MarkerPosition scales a normalized landmark to pixel coordinates.
func MarkerPosition(p hud.Landmark, width, height int) image.Point {
	return image.Pt(
		int(math.Round(p.X*float64(width))),
		int(math.Round(p.Y*float64(height))),
	)
}
