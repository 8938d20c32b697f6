package gpio

import "errors"

// FakePanel is a test double that returns scripted line levels.
type FakePanel struct {
	// Samples contains scripted levels to return. Each call to Read
	// consumes the next sample; once exhausted, the last sample repeats.
	Samples []Levels

	// index tracks current position in Samples
	index int

	// LED mirrors what the real panel's LED would show: lit after
	// construction, dark after Close.
	LED bool

	// CloseCalls counts how many times Close was called.
	CloseCalls int

	// ReadError, if set, will be returned by Read.
	ReadError error
}

// NewFakePanel creates a FakePanel with the given samples and the LED lit.
func NewFakePanel(samples []Levels) *FakePanel {
	return &FakePanel{Samples: samples, LED: true}
}

// Read returns the next scripted sample.
func (f *FakePanel) Read() (Levels, error) {
	if f.ReadError != nil {
		return Levels{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Levels{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close turns the LED off and records the call. Like the real panel it
// is safe to call any number of times.
func (f *FakePanel) Close() error {
	f.LED = false
	f.CloseCalls++
	return nil
}

// Reset rewinds to the first sample and relights the LED.
func (f *FakePanel) Reset() {
	f.index = 0
	f.LED = true
	f.CloseCalls = 0
}
