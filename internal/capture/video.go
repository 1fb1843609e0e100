package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// Video is the display surface a camera stream is bound to. It keeps the
// most recent frame and its native resolution. A Video with no bound camera
// stays empty.
type Video struct {
	mu     sync.RWMutex
	camera Camera
	frame  gocv.Mat
	width  int
	height int
	has    bool
}

// NewVideo creates an unbound video surface.
func NewVideo() *Video {
	return &Video{frame: gocv.NewMat()}
}

// Bind attaches an open camera to the surface.
func (v *Video) Bind(cam Camera) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera = cam
}

// Bound reports whether a camera stream is attached.
func (v *Video) Bound() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.camera != nil
}

// Update reads the next frame from the bound camera. It returns the read
// error, if any; an unbound surface returns ErrCameraNotOpen.
func (v *Video) Update() error {
	v.mu.RLock()
	cam := v.camera
	v.mu.RUnlock()

	if cam == nil {
		return ErrCameraNotOpen
	}

	mat, err := cam.ReadFrame()
	if err != nil {
		return err
	}
	v.Set(mat)
	return nil
}

// Set replaces the current frame and takes ownership of mat.
func (v *Video) Set(mat *gocv.Mat) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.frame.Close()
	v.frame = *mat
	v.width = mat.Cols()
	v.height = mat.Rows()
	v.has = !mat.Empty()
}

// Ready reports whether a frame is available.
func (v *Video) Ready() bool {
	if v == nil {
		return false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.has
}

// Size returns the native resolution of the current frame.
func (v *Video) Size() (width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// Snapshot returns a copy of the current frame owned by the caller.
func (v *Video) Snapshot() (gocv.Mat, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if !v.has {
		return gocv.NewMat(), false
	}
	return v.frame.Clone(), true
}

// Close releases the frame and detaches the camera. The camera itself is
// owned by whoever acquired it.
func (v *Video) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera = nil
	v.has = false
	v.width, v.height = 0, 0
	return v.frame.Close()
}
