package hud

import (
	"fmt"
	"reflect"
	"testing"
)

func TestState_Initial(t *testing.T) {
	s := NewState("session-1")

	if s.Connected {
		t.Error("new state should be disconnected")
	}
	if s.Gesture != NoGesture {
		t.Errorf("Gesture = %q, want %q", s.Gesture, NoGesture)
	}
	if s.Log.Len() != 0 {
		t.Errorf("Log.Len() = %d, want 0", s.Log.Len())
	}
}

func TestState_Connect(t *testing.T) {
	s := NewState("s")
	s.MarkConnected()

	snap := s.Snapshot()
	if !snap.Connected {
		t.Error("expected connected after MarkConnected")
	}
	if !reflect.DeepEqual(snap.Log, []string{"Connected"}) {
		t.Errorf("Log = %v, want [Connected]", snap.Log)
	}
}

func TestState_CloseAfterConnect(t *testing.T) {
	s := NewState("s")
	s.MarkConnected()
	before := s.Log.Entries()

	s.MarkDisconnected()

	if s.Connected {
		t.Error("expected disconnected after MarkDisconnected")
	}
	if !reflect.DeepEqual(s.Log.Entries(), before) {
		t.Errorf("Log = %v, want unchanged %v", s.Log.Entries(), before)
	}
}

func TestState_ApplyGesture(t *testing.T) {
	s := NewState("s")
	msg, err := ParseMessage([]byte(`{"type":"gesture","gesture":"swipe_left","action":"prev_track"}`))
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}

	eff := s.Apply(msg)

	if !eff.Changed || eff.Redraw {
		t.Errorf("Apply() effect = %+v, want Changed without Redraw", eff)
	}
	if s.Gesture != "swipe_left" {
		t.Errorf("Gesture = %q, want swipe_left", s.Gesture)
	}
	if s.Log.Head() != "G:swipe_left->prev_track" {
		t.Errorf("Log.Head() = %q", s.Log.Head())
	}
}

func TestState_GestureLabelTracksLatest(t *testing.T) {
	sequences := [][]string{
		{"fist"},
		{"open_palm", "fist", "thumbs_up"},
		{"swipe_left", "swipe_left", "pointing"},
	}

	for i, seq := range sequences {
		t.Run(fmt.Sprintf("sequence %d", i), func(t *testing.T) {
			s := NewState("s")
			for _, g := range seq {
				s.Apply(GestureMessage{Gesture: g, Action: "none"})
			}
			if want := seq[len(seq)-1]; s.Gesture != want {
				t.Errorf("Gesture = %q, want %q", s.Gesture, want)
			}
		})
	}
}

func TestState_LogCappedAt40(t *testing.T) {
	s := NewState("s")
	for i := 1; i <= 42; i++ {
		s.Apply(GestureMessage{Gesture: fmt.Sprintf("g%d", i), Action: "a"})
	}

	entries := s.Log.Entries()
	if len(entries) != 40 {
		t.Fatalf("len(log) = %d, want 40", len(entries))
	}
	if entries[0] != "G:g42->a" {
		t.Errorf("log head = %q, want G:g42->a", entries[0])
	}
	for _, e := range entries {
		if e == "G:g1->a" || e == "G:g2->a" {
			t.Errorf("oldest entry %q should have been evicted", e)
		}
	}
	if entries[39] != "G:g3->a" {
		t.Errorf("log tail = %q, want G:g3->a", entries[39])
	}
}

func TestState_ConnectThenGestures(t *testing.T) {
	s := NewState("s")
	s.MarkConnected()
	for i := 0; i < 45; i++ {
		s.Apply(GestureMessage{Gesture: "g", Action: fmt.Sprint(i)})
	}

	entries := s.Log.Entries()
	if len(entries) != LogCapacity {
		t.Fatalf("len(log) = %d, want %d", len(entries), LogCapacity)
	}
	for _, e := range entries {
		if e == ConnectedEntry {
			t.Error("Connected entry should have been evicted")
		}
	}
}

func TestState_ApplyLandmarks(t *testing.T) {
	s := NewState("s")
	s.MarkConnected()
	before := s.Snapshot()

	points := []Landmark{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}}
	eff := s.Apply(LandmarksMessage{Landmarks: points})

	if !eff.Redraw {
		t.Error("landmarks should request a redraw")
	}
	if !reflect.DeepEqual(eff.Landmarks, points) {
		t.Errorf("Landmarks = %v, want %v", eff.Landmarks, points)
	}
	if !reflect.DeepEqual(s.Snapshot(), before) {
		t.Error("landmarks must not touch the log or gesture label")
	}
}

func TestState_IgnoredMessagesLeaveStateUnchanged(t *testing.T) {
	msgs := []Message{
		UnknownMessage{Type: "pose"},
		UnknownMessage{},
		StatusMessage{Status: "no_hand"},
		BackendError{Error: "Model not trained"},
	}

	for _, msg := range msgs {
		t.Run(fmt.Sprintf("%T", msg), func(t *testing.T) {
			s := NewState("s")
			s.MarkConnected()
			s.Apply(GestureMessage{Gesture: "fist", Action: "close_app"})
			before := s.Snapshot()

			eff := s.Apply(msg)

			if eff.Changed || eff.Redraw {
				t.Errorf("Apply() effect = %+v, want none", eff)
			}
			if !reflect.DeepEqual(s.Snapshot(), before) {
				t.Errorf("state changed: before %+v, after %+v", before, s.Snapshot())
			}
		})
	}
}
