// Package hud holds the in-memory display state of the gesture HUD: the
// connection flag, the current gesture label and the capped event log, plus
// the wire messages that mutate them.
package hud

// LogCapacity is the maximum number of entries kept in the event log.
const LogCapacity = 40

// Log is a fixed-capacity event history ordered most-recent-first.
// Pushing onto a full log evicts the oldest entry.
type Log struct {
	buf  [LogCapacity]string
	head int // index of the next write
	n    int
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Push prepends an entry to the log.
func (l *Log) Push(entry string) {
	l.buf[l.head] = entry
	l.head = (l.head + 1) % LogCapacity
	if l.n < LogCapacity {
		l.n++
	}
}

// Len returns the number of entries currently held.
func (l *Log) Len() int {
	return l.n
}

// Head returns the newest entry, or "" when the log is empty.
func (l *Log) Head() string {
	if l.n == 0 {
		return ""
	}
	return l.buf[(l.head-1+LogCapacity)%LogCapacity]
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []string {
	out := make([]string, l.n)
	for i := 0; i < l.n; i++ {
		out[i] = l.buf[(l.head-1-i+2*LogCapacity)%LogCapacity]
	}
	return out
}
