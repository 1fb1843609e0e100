package feed

import "github.com/ayusman/jarvishud/internal/hud"

// GestureActions maps the backend's gesture classes to their actions.
var GestureActions = map[string]string{
	"open_palm":   "activate",
	"fist":        "close_app",
	"thumbs_up":   "confirm",
	"swipe_right": "next",
	"swipe_left":  "prev",
	"two_fingers": "volume_toggle",
	"pointing":    "mouse_control",
}

// ActionFor returns the action bound to gesture, or "none".
func ActionFor(gesture string) string {
	if action, ok := GestureActions[gesture]; ok {
		return action
	}
	return "none"
}

// GestureEvent is the outbound form of hud.GestureMessage.
type GestureEvent struct {
	Type    hud.Kind `json:"type"`
	Gesture string   `json:"gesture"`
	Action  string   `json:"action"`
}

// LandmarksEvent is the outbound form of hud.LandmarksMessage.
type LandmarksEvent struct {
	Type      hud.Kind       `json:"type"`
	Landmarks []hud.Landmark `json:"landmarks"`
}

// StatusEvent is the outbound form of hud.StatusMessage.
type StatusEvent struct {
	Type   hud.Kind `json:"type"`
	Status string   `json:"status"`
}

// ErrorEvent is the untyped error payload.
type ErrorEvent struct {
	Error string `json:"error"`
}

// NewGesture builds a gesture event with the action from GestureActions.
func NewGesture(gesture string) GestureEvent {
	return GestureEvent{Type: hud.KindGesture, Gesture: gesture, Action: ActionFor(gesture)}
}

// NewLandmarks builds a landmarks event.
func NewLandmarks(points []hud.Landmark) LandmarksEvent {
	return LandmarksEvent{Type: hud.KindLandmarks, Landmarks: points}
}

// NoHand is the status sent when no hand is in view.
func NoHand() StatusEvent {
	return StatusEvent{Type: hud.KindStatus, Status: "no_hand"}
}
