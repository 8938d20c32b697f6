package emit

import "github.com/tvargenta/encoderd/internal/logic"

// FakeWriter records emitted events for test assertions.
type FakeWriter struct {
	// Events contains every event emitted, in order.
	Events []logic.Event

	// EmitError, if set, will be returned by Emit.
	EmitError error
}

// NewFakeWriter creates a FakeWriter for testing.
func NewFakeWriter() *FakeWriter {
	return &FakeWriter{}
}

// Emit records the event.
func (f *FakeWriter) Emit(e logic.Event) error {
	if f.EmitError != nil {
		return f.EmitError
	}
	f.Events = append(f.Events, e)
	return nil
}

// Reset clears recorded events.
func (f *FakeWriter) Reset() {
	f.Events = nil
	f.EmitError = nil
}
