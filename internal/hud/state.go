package hud

// NoGesture is the label shown before any gesture event has arrived.
const NoGesture = "—"

// ConnectedEntry is pushed onto the log when the channel opens.
const ConnectedEntry = "Connected"

// State is the display state of one mounted HUD. It is owned by a single
// goroutine; other goroutines read it through Snapshot copies.
type State struct {
	Session   string
	Connected bool
	Gesture   string
	Log       *Log
}

// NewState creates the initial state for a mount identified by session.
func NewState(session string) *State {
	return &State{
		Session: session,
		Gesture: NoGesture,
		Log:     NewLog(),
	}
}

// Effect describes what the caller must do after a message was applied.
type Effect struct {
	// Redraw is true when Landmarks must be drawn over the current frame.
	Redraw    bool
	Landmarks []Landmark
	// Changed reports whether the state itself was mutated.
	Changed bool
}

// MarkConnected records a successful channel open.
func (s *State) MarkConnected() {
	s.Connected = true
	s.Log.Push(ConnectedEntry)
}

// MarkDisconnected records channel closure. The log is left untouched.
func (s *State) MarkDisconnected() {
	s.Connected = false
}

// Apply updates the state for one inbound message.
func (s *State) Apply(msg Message) Effect {
	switch m := msg.(type) {
	case GestureMessage:
		s.Gesture = m.Gesture
		s.Log.Push(FormatGesture(m.Gesture, m.Action))
		return Effect{Changed: true}
	case LandmarksMessage:
		return Effect{Redraw: true, Landmarks: m.Landmarks}
	case StatusMessage, BackendError, UnknownMessage:
		// Not part of the display.
		return Effect{}
	default:
		return Effect{}
	}
}

// Snapshot is an immutable copy of State.
type Snapshot struct {
	Session   string   `json:"session"`
	Connected bool     `json:"connected"`
	Gesture   string   `json:"gesture"`
	Log       []string `json:"log"`
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Session:   s.Session,
		Connected: s.Connected,
		Gesture:   s.Gesture,
		Log:       s.Log.Entries(),
	}
}
