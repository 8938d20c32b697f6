package logic

import "time"

// NextDebounce is the minimum interval between accepted presses of the
// next button. Edges arriving faster than this are dropped, not queued.
const NextDebounce = time.Second

// Decoder turns raw line level samples into events.
// One instance per panel; not safe for concurrent use.
type Decoder struct {
	primed bool

	lastClock  bool
	lastButton bool
	lastNext   bool

	// primary button latch
	pressed  bool
	released bool

	nextDebounce time.Duration
	lastNextFire time.Time

	counts EventCounts
}

// NewDecoder creates a decoder with the given next-button debounce interval.
func NewDecoder(nextDebounce time.Duration) *Decoder {
	return &Decoder{nextDebounce: nextDebounce}
}

// Process takes one sample and returns the events it produced, in a fixed
// order: rotary first, then the primary button, then the next button.
// The first sample only primes the last-level state and never emits.
func (d *Decoder) Process(in Input) []Event {
	if !d.primed {
		d.lastClock = in.Clock
		d.lastButton = in.Button
		d.lastNext = in.Next
		d.primed = true
		return nil
	}

	var events []Event

	// Rotary: decode on the falling clock edge only, so each detent
	// counts once. The data level relative to the new clock level gives
	// the direction.
	if in.Clock != d.lastClock {
		if !in.Clock {
			if in.Data != in.Clock {
				events = append(events, EventRotaryCW)
			} else {
				events = append(events, EventRotaryCCW)
			}
		}
		d.lastClock = in.Clock
	}

	// Primary button: latch both edges so repeated reads of the same
	// logical edge cannot emit twice.
	if in.Button != d.lastButton {
		if !in.Button && !d.pressed {
			events = append(events, EventPress)
			d.pressed = true
			d.released = false
		} else if in.Button && d.pressed && !d.released {
			events = append(events, EventRelease)
			d.pressed = false
			d.released = true
		}
		d.lastButton = in.Button
	}

	// Next button: a falling edge is accepted only if at least the
	// debounce interval has passed since the last accepted one. The
	// level still tracks on rejected edges, so a rapid press-release-press
	// within the window only lets the first press through.
	if in.Next != d.lastNext {
		if !in.Next {
			if d.lastNextFire.IsZero() || in.Time.Sub(d.lastNextFire) >= d.nextDebounce {
				events = append(events, EventNext)
				d.lastNextFire = in.Time
			}
		}
		d.lastNext = in.Next
	}

	for _, e := range events {
		switch e {
		case EventRotaryCW:
			d.counts.RotaryCW++
		case EventRotaryCCW:
			d.counts.RotaryCCW++
		case EventPress:
			d.counts.Press++
		case EventRelease:
			d.counts.Release++
		case EventNext:
			d.counts.Next++
		}
	}

	return events
}

// Primed reports whether the decoder has seen its first sample.
func (d *Decoder) Primed() bool {
	return d.primed
}

// Counts returns the number of events emitted since startup.
func (d *Decoder) Counts() EventCounts {
	return d.counts
}
