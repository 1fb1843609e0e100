package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestVideo_Unbound(t *testing.T) {
	v := NewVideo()
	defer v.Close()

	if v.Bound() {
		t.Error("new video should be unbound")
	}
	if v.Ready() {
		t.Error("unbound video should not be ready")
	}
	if err := v.Update(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("Update() error = %v, want ErrCameraNotOpen", err)
	}
	if _, ok := v.Snapshot(); ok {
		t.Error("Snapshot() should report no frame")
	}
}

func TestVideo_NilIsNotReady(t *testing.T) {
	var v *Video
	if v.Ready() {
		t.Error("nil video should not be ready")
	}
}

func TestVideo_UpdateTracksNativeSize(t *testing.T) {
	small := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	defer small.Close()
	large := gocv.NewMatWithSize(720, 1280, gocv.MatTypeCV8UC3)
	defer large.Close()

	cam := NewMockCamera([]*gocv.Mat{&small, &large}, false)
	cam.Open()
	defer cam.Close()

	v := NewVideo()
	defer v.Close()
	v.Bind(cam)

	if err := v.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if w, h := v.Size(); w != 320 || h != 240 {
		t.Errorf("Size() = %dx%d, want 320x240", w, h)
	}

	if err := v.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if w, h := v.Size(); w != 1280 || h != 720 {
		t.Errorf("Size() = %dx%d, want 1280x720", w, h)
	}

	snap, ok := v.Snapshot()
	if !ok {
		t.Fatal("Snapshot() should return the current frame")
	}
	defer snap.Close()
	if snap.Cols() != 1280 {
		t.Errorf("snapshot cols = %d, want 1280", snap.Cols())
	}
}
