package overlay

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"
)

var labelColor = color.RGBA{R: 255, G: 255, B: 255}

// Composite returns a copy of frame with surface alpha-blended over it and
// the gesture label in the top-left corner. The surface is skipped when it
// is nil or its size differs from the frame. The caller owns the returned
// Mat.
func Composite(frame gocv.Mat, surface *Surface, gesture string) gocv.Mat {
	out := frame.Clone()
	if frame.Empty() {
		return out
	}

	if surface != nil && frame.Channels() == 3 {
		if w, h := surface.Size(); w == frame.Cols() && h == frame.Rows() {
			blend(frame, *surface.Mat(), &out)
		}
	}

	gocv.PutText(&out, "Gesture: "+printable(gesture), image.Pt(10, 24),
		gocv.FontHersheySimplex, 0.7, labelColor, 2)
	return out
}

// blend writes frame*(1-a) + overlay*a into dst, with a taken per pixel
// from the overlay's alpha channel.
func blend(frame, overlay gocv.Mat, dst *gocv.Mat) {
	channels := gocv.Split(overlay)
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()
	if len(channels) != 4 {
		return
	}

	colors := gocv.NewMat()
	defer colors.Close()
	gocv.Merge(channels[:3], &colors)

	fg := gocv.NewMat()
	defer fg.Close()
	colors.ConvertTo(&fg, gocv.MatTypeCV32FC3)

	alpha := gocv.NewMat()
	defer alpha.Close()
	channels[3].ConvertToWithParams(&alpha, gocv.MatTypeCV32F, 1.0/255, 0)

	alpha3 := gocv.NewMat()
	defer alpha3.Close()
	gocv.Merge([]gocv.Mat{alpha, alpha, alpha}, &alpha3)

	ones := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(1, 1, 1, 0), frame.Rows(), frame.Cols(), gocv.MatTypeCV32FC3)
	defer ones.Close()
	inverse := gocv.NewMat()
	defer inverse.Close()
	gocv.Subtract(ones, alpha3, &inverse)

	bg := gocv.NewMat()
	defer bg.Close()
	frame.ConvertTo(&bg, gocv.MatTypeCV32FC3)

	gocv.Multiply(fg, alpha3, &fg)
	gocv.Multiply(bg, inverse, &bg)

	sum := gocv.NewMat()
	defer sum.Close()
	gocv.Add(fg, bg, &sum)
	sum.ConvertTo(dst, gocv.MatTypeCV8UC3)
}

// EncodeJPEG encodes mat for the MJPEG stream.
func EncodeJPEG(mat gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// printable replaces characters the Hershey and basic fonts cannot draw.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '-'
		}
		return r
	}, s)
}
