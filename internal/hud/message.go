package hud

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrMalformed is returned when an inbound payload cannot be decoded into a
// known message shape.
var ErrMalformed = errors.New("malformed message")

// Kind is the "type" discriminant of an inbound message.
type Kind string

const (
	KindGesture   Kind = "gesture"
	KindLandmarks Kind = "landmarks"
	// KindStatus is the backend heartbeat sent when no hand is in view.
	KindStatus Kind = "status"
)

// Landmark is a detected feature position normalized to [0,1] on each axis
// relative to the frame width and height.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Message is one inbound event. The concrete types below are the only
// implementations.
type Message interface {
	Kind() Kind
	message()
}

// GestureMessage reports a classified gesture and the action bound to it.
type GestureMessage struct {
	Gesture string `json:"gesture"`
	Action  string `json:"action"`
}

// LandmarksMessage carries the landmark points of one frame, in order.
type LandmarksMessage struct {
	Landmarks []Landmark `json:"landmarks"`
}

// StatusMessage is a backend status notice such as "no_hand".
type StatusMessage struct {
	Status string `json:"status"`
}

// BackendError is the untyped {"error": "..."} payload the backend sends
// before closing when it cannot serve detections.
type BackendError struct {
	Error string `json:"error"`
}

// UnknownMessage is any payload whose discriminant is not recognized.
type UnknownMessage struct {
	Type string
}

func (GestureMessage) Kind() Kind   { return KindGesture }
func (LandmarksMessage) Kind() Kind { return KindLandmarks }
func (StatusMessage) Kind() Kind    { return KindStatus }
func (BackendError) Kind() Kind     { return "" }
func (m UnknownMessage) Kind() Kind { return Kind(m.Type) }

func (GestureMessage) message()   {}
func (LandmarksMessage) message() {}
func (StatusMessage) message()    {}
func (BackendError) message()     {}
func (UnknownMessage) message()   {}

// envelope is decoded first to read the discriminant.
type envelope struct {
	Type  string  `json:"type"`
	Error *string `json:"error"`
}

// ParseMessage decodes a raw channel payload into a Message.
//
// Payloads that are not JSON objects, gesture events without a gesture
// identifier and landmarks that are not finite numbers are rejected with
// ErrMalformed. Unrecognized discriminants decode to UnknownMessage.
func ParseMessage(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch Kind(env.Type) {
	case KindGesture:
		var m GestureMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: gesture: %v", ErrMalformed, err)
		}
		if m.Gesture == "" {
			return nil, fmt.Errorf("%w: gesture: missing gesture identifier", ErrMalformed)
		}
		return m, nil

	case KindLandmarks:
		var m LandmarksMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: landmarks: %v", ErrMalformed, err)
		}
		for i, p := range m.Landmarks {
			if !finite(p.X) || !finite(p.Y) {
				return nil, fmt.Errorf("%w: landmarks: point %d is not finite", ErrMalformed, i)
			}
		}
		return m, nil

	case KindStatus:
		var m StatusMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: status: %v", ErrMalformed, err)
		}
		return m, nil

	case "":
		if env.Error != nil {
			return BackendError{Error: *env.Error}, nil
		}
	}

	return UnknownMessage{Type: env.Type}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatGesture renders the log line for a gesture event.
func FormatGesture(gesture, action string) string {
	return "G:" + gesture + "->" + action
}
