package feed

import "github.com/ayusman/jarvishud/internal/hud"

// HandPoints is the number of landmarks per hand in the MediaPipe layout:
// wrist, then four joints each for thumb, index, middle, ring and pinky.
const HandPoints = 21

// ThumbsUp returns a right hand with the thumb extended upward and the other
// fingers curled.
func ThumbsUp() []hud.Landmark {
	return []hud.Landmark{
		{X: 0.50, Y: 0.80}, // wrist
		{X: 0.55, Y: 0.75}, {X: 0.58, Y: 0.65}, {X: 0.58, Y: 0.50}, {X: 0.58, Y: 0.35},
		{X: 0.55, Y: 0.70}, {X: 0.55, Y: 0.68}, {X: 0.52, Y: 0.70}, {X: 0.50, Y: 0.72},
		{X: 0.50, Y: 0.68}, {X: 0.50, Y: 0.66}, {X: 0.47, Y: 0.68}, {X: 0.45, Y: 0.70},
		{X: 0.45, Y: 0.70}, {X: 0.45, Y: 0.68}, {X: 0.42, Y: 0.70}, {X: 0.40, Y: 0.72},
		{X: 0.40, Y: 0.72}, {X: 0.40, Y: 0.70}, {X: 0.37, Y: 0.72}, {X: 0.35, Y: 0.74},
	}
}

// OpenPalm returns a right hand with all five fingers extended.
func OpenPalm() []hud.Landmark {
	return []hud.Landmark{
		{X: 0.50, Y: 0.80},
		{X: 0.55, Y: 0.75}, {X: 0.62, Y: 0.70}, {X: 0.68, Y: 0.65}, {X: 0.73, Y: 0.60},
		{X: 0.55, Y: 0.68}, {X: 0.57, Y: 0.55}, {X: 0.58, Y: 0.45}, {X: 0.58, Y: 0.35},
		{X: 0.50, Y: 0.66}, {X: 0.50, Y: 0.52}, {X: 0.50, Y: 0.40}, {X: 0.50, Y: 0.28},
		{X: 0.45, Y: 0.68}, {X: 0.43, Y: 0.55}, {X: 0.42, Y: 0.45}, {X: 0.42, Y: 0.35},
		{X: 0.40, Y: 0.70}, {X: 0.37, Y: 0.60}, {X: 0.35, Y: 0.50}, {X: 0.34, Y: 0.42},
	}
}

// Shift moves every point by (dx, dy), clamping to [0,1].
func Shift(points []hud.Landmark, dx, dy float64) []hud.Landmark {
	out := make([]hud.Landmark, len(points))
	for i, p := range points {
		out[i] = hud.Landmark{X: clamp01(p.X + dx), Y: clamp01(p.Y + dy)}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
