package hud

import (
	"fmt"
	"reflect"
	"testing"
)

func TestLog_Push(t *testing.T) {
	tests := []struct {
		name   string
		pushes int
	}{
		{name: "empty", pushes: 0},
		{name: "single", pushes: 1},
		{name: "below capacity", pushes: 39},
		{name: "at capacity", pushes: 40},
		{name: "one over", pushes: 41},
		{name: "wrapped twice", pushes: 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLog()
			var pushed []string
			for i := 0; i < tt.pushes; i++ {
				entry := fmt.Sprintf("e%d", i)
				l.Push(entry)
				pushed = append(pushed, entry)
			}

			want := min(tt.pushes, LogCapacity)
			if l.Len() != want {
				t.Fatalf("Len() = %d, want %d", l.Len(), want)
			}

			// Last LogCapacity pushes in reverse order.
			expected := make([]string, 0, want)
			for i := len(pushed) - 1; i >= len(pushed)-want; i-- {
				expected = append(expected, pushed[i])
			}

			got := l.Entries()
			if !reflect.DeepEqual(got, expected) {
				t.Errorf("Entries() = %v, want %v", got, expected)
			}
		})
	}
}

func TestLog_Head(t *testing.T) {
	l := NewLog()
	if got := l.Head(); got != "" {
		t.Errorf("Head() on empty log = %q, want empty", got)
	}

	l.Push("a")
	l.Push("b")
	if got := l.Head(); got != "b" {
		t.Errorf("Head() = %q, want b", got)
	}
}

func TestLog_EntriesIsCopy(t *testing.T) {
	l := NewLog()
	l.Push("a")

	entries := l.Entries()
	entries[0] = "mutated"

	if got := l.Head(); got != "a" {
		t.Errorf("Head() = %q after mutating Entries() result, want a", got)
	}
}
