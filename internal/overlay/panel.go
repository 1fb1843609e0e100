package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ayusman/jarvishud/internal/hud"
)

// Panel layout.
const (
	PanelWidth  = 360
	panelMargin = 8
	lineHeight  = 15
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 16, A: 255}
	panelText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	panelOnline     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	panelOffline    = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)

// Panel renders the HUD status: connection, current gesture and the event
// log, newest first.
func Panel(snap hud.Snapshot) *image.RGBA {
	lines := 2 + len(snap.Log)
	height := 2*panelMargin + lines*lineHeight
	img := image.NewRGBA(image.Rect(0, 0, PanelWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(panelBackground), image.Point{}, draw.Src)

	status, statusColor := "Disconnected", panelOffline
	if snap.Connected {
		status, statusColor = "Connected", panelOnline
	}

	y := panelMargin + lineHeight - 3
	drawText(img, panelMargin, y, status, statusColor)
	y += lineHeight
	drawText(img, panelMargin, y, "Gesture: "+printable(snap.Gesture), panelText)
	for _, entry := range snap.Log {
		y += lineHeight
		drawText(img, panelMargin, y, printable(entry), panelText)
	}
	return img
}

func drawText(dst draw.Image, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
