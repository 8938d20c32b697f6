// Package logic contains pure decode logic for the encoder front panel.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Event is one of the five symbols written to the output stream.
type Event string

const (
	EventRotaryCW  Event = "ROTARY_CW"
	EventRotaryCCW Event = "ROTARY_CCW"
	EventPress     Event = "BTN_PRESS"
	EventRelease   Event = "BTN_RELEASE"
	EventNext      Event = "BTN_NEXT"
)

// Input is a single sample of raw line levels (true = high).
// Both buttons are active-low: a pressed button reads false.
type Input struct {
	Clock  bool
	Data   bool
	Button bool
	Next   bool
	Time   time.Time
}

// EventCounts tracks the number of each event emitted since startup.
type EventCounts struct {
	RotaryCW  int
	RotaryCCW int
	Press     int
	Release   int
	Next      int
}

// Total returns the number of events emitted across all symbols.
func (c EventCounts) Total() int {
	return c.RotaryCW + c.RotaryCCW + c.Press + c.Release + c.Next
}
