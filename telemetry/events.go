// Package telemetry provides frame timing, windowed statistics, notable
// moment detection and CSV output for the visuals.
package telemetry

// EventType identifies a host event counted per window.
type EventType uint8

const (
	EventResize EventType = iota
	EventReset
	EventClick
	EventScroll
	EventEmblemSpawn
	numEvents
)

var eventNames = [numEvents]string{"resize", "reset", "click", "scroll", "emblem_spawn"}

// String returns the event's name.
func (e EventType) String() string {
	if e < numEvents {
		return eventNames[e]
	}
	return "unknown"
}

// eventCounts tallies events within a window.
type eventCounts [numEvents]int

func (c *eventCounts) add(e EventType) {
	if e < numEvents {
		c[e]++
	}
}
