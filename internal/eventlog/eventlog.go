// Package eventlog holds the colony's player-facing message log: a fixed
// ring of the most recent messages with a single read cursor.
//
// The reader walks forward from the oldest slot it has not yet seen. When the
// writer laps the reader the read cursor is pushed forward with it, and once
// the reader catches up with the writer the cursor rewinds so the next read
// pass starts over. After the ring wraps, a rewound reader starts at slot 0,
// which is not the oldest message; callers that need strict chronological
// order should sort by their own sequence numbers.
package eventlog

import "fmt"

// Capacity is the number of messages the log retains.
const Capacity = 10

// Sink observes every message pushed to a log.
type Sink func(msg string)

// Log is a fixed-capacity message ring. The zero value is not ready for
// use; call New.
type Log struct {
	lines [Capacity]string
	write int
	read  int
	count int
	sinks []Sink
}

// New returns an empty log.
func New() *Log {
	return &Log{write: -1, read: -1}
}

// AddSink registers a function called with each pushed message.
func (l *Log) AddSink(s Sink) {
	l.sinks = append(l.sinks, s)
}

// Push stores msg, overwriting the oldest slot once the ring is full.
func (l *Log) Push(msg string) {
	l.write = (l.write + 1) % Capacity
	if l.write == l.read {
		l.read = (l.read + 1) % Capacity
	}
	l.lines[l.write] = msg
	if l.count < Capacity {
		l.count++
	}
	for _, s := range l.sinks {
		s(msg)
	}
}

// Pushf formats and pushes a message.
func (l *Log) Pushf(format string, args ...any) {
	l.Push(fmt.Sprintf(format, args...))
}

// NextUnread returns the next message for the reader. It reports false when
// the log is empty or the reader has caught up with the writer, in which
// case the cursor is rewound for the next pass.
func (l *Log) NextUnread() (string, bool) {
	if l.write == -1 {
		return "", false
	}
	if l.read == l.write {
		l.read = -1
		return "", false
	}
	l.read = (l.read + 1) % Capacity
	return l.lines[l.read], true
}

// Rewind resets the read cursor so the next pass starts from slot 0.
func (l *Log) Rewind() {
	l.read = -1
}

// Clear drops every message and resets both cursors.
func (l *Log) Clear() {
	l.lines = [Capacity]string{}
	l.write = -1
	l.read = -1
	l.count = 0
}

// Len returns the number of stored messages.
func (l *Log) Len() int {
	return l.count
}

// All rewinds the reader and returns one full read pass. The cursor is left
// rewound.
func (l *Log) All() []string {
	l.Rewind()
	var out []string
	for {
		msg, ok := l.NextUnread()
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}
