package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for consumers of the visual queue.
type EventLogger interface {
	Log(event VisualEvent)
	Events() []VisualEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []VisualEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

// Log records the event. Events that already carry a queue sequence number
// keep it; unsequenced events are numbered by the logger.
func (l *MemoryLogger) Log(event VisualEvent) {
	l.seq++
	if event.Seq == 0 {
		event.Seq = l.seq
	}
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []VisualEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []VisualEvent {
	return Filter(l.events, t)
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() VisualEvent {
	if len(l.events) == 0 {
		return VisualEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event VisualEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// Drain hands every queued event to the logger in order and empties the
// queue. This is the presentation side of the queue contract: the engine
// only ever appends.
func Drain(queue *[]VisualEvent, l EventLogger) int {
	if queue == nil {
		return 0
	}
	n := len(*queue)
	for _, ev := range *queue {
		l.Log(ev)
	}
	*queue = nil
	return n
}

// Filter returns the events of the given type, preserving order.
func Filter(events []VisualEvent, t EventType) []VisualEvent {
	var result []VisualEvent
	for _, e := range events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e VisualEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 11 chars for alignment
	for len(phase) < 11 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []VisualEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}
