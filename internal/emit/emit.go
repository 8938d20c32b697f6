// Package emit delivers decoded events to the output stream.
package emit

import (
	"fmt"
	"io"

	"github.com/tvargenta/encoderd/internal/logic"
)

// Writer delivers events to a downstream consumer.
type Writer interface {
	// Emit writes one event. The event must be visible to the consumer
	// before Emit returns.
	Emit(logic.Event) error
}

// StreamWriter writes one symbol per line to an io.Writer. The writer
// should be unbuffered (os.Stdout is): nothing is held back between
// events, so a consumer reading the stream sees each one promptly.
type StreamWriter struct {
	w io.Writer
}

// NewStream creates a StreamWriter over w.
func NewStream(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// Emit writes the event symbol followed by a newline.
func (s *StreamWriter) Emit(e logic.Event) error {
	if _, err := fmt.Fprintln(s.w, string(e)); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
