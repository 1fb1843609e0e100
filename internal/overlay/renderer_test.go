package overlay

import (
	"image"
	"reflect"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/jarvishud/internal/hud"
)

type fakeVideo struct {
	ready         bool
	width, height int
}

func (v *fakeVideo) Ready() bool             { return v.ready }
func (v *fakeVideo) Size() (int, int)        { return v.width, v.height }
func (v *fakeVideo) resize(width, height int) { v.width, v.height = width, height }

func pixel(m *gocv.Mat, p image.Point) gocv.Vecb {
	return m.GetVecbAt(p.Y, p.X)
}

func TestMarkerPosition(t *testing.T) {
	tests := []struct {
		name string
		p    hud.Landmark
		w, h int
		want image.Point
	}{
		{name: "origin", p: hud.Landmark{X: 0, Y: 0}, w: 640, h: 480, want: image.Pt(0, 0)},
		{name: "centre", p: hud.Landmark{X: 0.5, Y: 0.5}, w: 640, h: 480, want: image.Pt(320, 240)},
		{name: "far corner", p: hud.Landmark{X: 1, Y: 1}, w: 640, h: 480, want: image.Pt(640, 480)},
		{name: "rounds", p: hud.Landmark{X: 0.3333, Y: 0.6667}, w: 300, h: 300, want: image.Pt(100, 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarkerPosition(tt.p, tt.w, tt.h); got != tt.want {
				t.Errorf("MarkerPosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderer_NoOpWithoutSurfaceOrVideo(t *testing.T) {
	points := []hud.Landmark{{X: 0.5, Y: 0.5}}

	t.Run("nil surface", func(t *testing.T) {
		r := NewRenderer(nil)
		if r.Draw(points, &fakeVideo{ready: true, width: 64, height: 48}) {
			t.Error("Draw() with no surface should be a no-op")
		}
	})

	t.Run("nil video", func(t *testing.T) {
		s := NewSurface()
		defer s.Close()
		r := NewRenderer(s)
		if r.Draw(points, nil) {
			t.Error("Draw() with no video should be a no-op")
		}
		if w, h := s.Size(); w != 0 || h != 0 {
			t.Errorf("surface resized to %dx%d on no-op", w, h)
		}
	})

	t.Run("video without frame", func(t *testing.T) {
		s := NewSurface()
		defer s.Close()
		r := NewRenderer(s)
		if r.Draw(points, &fakeVideo{}) {
			t.Error("Draw() before the stream is attached should be a no-op")
		}
		if len(r.Markers()) != 0 {
			t.Error("no markers should be recorded on no-op")
		}
	})
}

func TestRenderer_DrawResizesAndMarks(t *testing.T) {
	s := NewSurface()
	defer s.Close()
	r := NewRenderer(s)
	video := &fakeVideo{ready: true, width: 64, height: 48}

	points := []hud.Landmark{{X: 0.25, Y: 0.5}, {X: 0.75, Y: 0.25}}
	if !r.Draw(points, video) {
		t.Fatal("Draw() = false, want true")
	}

	if w, h := s.Size(); w != 64 || h != 48 {
		t.Fatalf("surface size = %dx%d, want 64x48", w, h)
	}

	want := []image.Point{image.Pt(16, 24), image.Pt(48, 12)}
	if got := r.Markers(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Markers() = %v, want %v", got, want)
	}

	for _, p := range want {
		px := pixel(s.Mat(), p)
		if px[0] != 0 || px[1] != 255 || px[2] != 0 || px[3] != MarkerColor.A {
			t.Errorf("pixel at %v = %v, want BGRA(0,255,0,%d)", p, px, MarkerColor.A)
		}
	}
	if px := pixel(s.Mat(), image.Pt(0, 0)); px[3] != 0 {
		t.Errorf("background pixel alpha = %d, want 0", px[3])
	}
}

func TestRenderer_RedrawClearsPreviousMarkers(t *testing.T) {
	s := NewSurface()
	defer s.Close()
	r := NewRenderer(s)
	video := &fakeVideo{ready: true, width: 64, height: 48}

	r.Draw([]hud.Landmark{{X: 0.25, Y: 0.5}}, video)
	r.Draw([]hud.Landmark{{X: 0.75, Y: 0.5}}, video)

	if px := pixel(s.Mat(), image.Pt(16, 24)); px[3] != 0 {
		t.Errorf("old marker still visible: %v", px)
	}
	if px := pixel(s.Mat(), image.Pt(48, 24)); px[1] != 255 {
		t.Errorf("new marker missing: %v", px)
	}
}

func TestRenderer_UsesSizeAtDrawTime(t *testing.T) {
	s := NewSurface()
	defer s.Close()
	r := NewRenderer(s)
	video := &fakeVideo{ready: true, width: 64, height: 48}
	points := []hud.Landmark{{X: 0.5, Y: 0.5}}

	r.Draw(points, video)
	first := r.Markers()

	video.resize(128, 96)
	r.Draw(points, video)

	if w, h := s.Size(); w != 128 || h != 96 {
		t.Errorf("surface size = %dx%d, want 128x96", w, h)
	}
	if got := r.Markers(); got[0] != image.Pt(64, 48) || first[0] != image.Pt(32, 24) {
		t.Errorf("markers = %v then %v", first, got)
	}
}

func TestRenderer_Idempotent(t *testing.T) {
	s := NewSurface()
	defer s.Close()
	r := NewRenderer(s)
	video := &fakeVideo{ready: true, width: 320, height: 240}
	points := []hud.Landmark{{X: 0.1, Y: 0.9}, {X: 0.42, Y: 0.17}, {X: 0.99, Y: 0.01}}

	r.Draw(points, video)
	first := r.Markers()
	r.Draw(points, video)

	if got := r.Markers(); !reflect.DeepEqual(got, first) {
		t.Errorf("second draw markers = %v, want %v", got, first)
	}
}

func TestRenderer_EmptyLandmarksClears(t *testing.T) {
	s := NewSurface()
	defer s.Close()
	r := NewRenderer(s)
	video := &fakeVideo{ready: true, width: 64, height: 48}

	r.Draw([]hud.Landmark{{X: 0.5, Y: 0.5}}, video)
	if !r.Draw(nil, video) {
		t.Fatal("Draw() = false, want true")
	}

	if len(r.Markers()) != 0 {
		t.Errorf("Markers() = %v, want none", r.Markers())
	}
	if px := pixel(s.Mat(), image.Pt(32, 24)); px[3] != 0 {
		t.Errorf("surface not cleared: %v", px)
	}
}

func TestRenderer_CloseReleasesSurface(t *testing.T) {
	r := NewRenderer(NewSurface())
	video := &fakeVideo{ready: true, width: 64, height: 48}
	r.Draw([]hud.Landmark{{X: 0.5, Y: 0.5}}, video)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if r.Surface() != nil {
		t.Error("Surface() should be nil after Close")
	}
	if r.Draw([]hud.Landmark{{X: 0.5, Y: 0.5}}, video) {
		t.Error("Draw() after Close should be a no-op")
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestRenderer_ComposeUsesSurface(t *testing.T) {
	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))

	r := NewRenderer(NewSurface())
	defer r.Close()
	r.Draw([]hud.Landmark{{X: 0.25, Y: 0.75}}, &fakeVideo{ready: true, width: 64, height: 48})

	out := r.Compose(frame, "fist")
	defer out.Close()

	if px := out.GetVecbAt(36, 16); px[1] < 225 {
		t.Errorf("composed marker pixel = %v, want green", px)
	}
}
