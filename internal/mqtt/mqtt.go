// Package mqtt provides an optional telemetry mirror of the event stream,
// with abstraction for testing. The stdout stream stays authoritative;
// everything here is best effort and failures must never disturb it.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/tvargenta/encoderd/internal/logic"
)

// Topic is the MQTT topic for mirrored encoder events.
const Topic = "tvargenta/encoder/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "tvargenta/encoder/system"

// Publisher mirrors events to a broker.
type Publisher interface {
	// Publish mirrors one encoder event. Callers log failures and
	// continue; the stdout stream does not depend on the mirror.
	Publish(event logic.Event, at time.Time) error

	// PublishSystem sends a system lifecycle event (STARTUP, SHUTDOWN).
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// SystemEvent represents a system lifecycle event.
type SystemEvent struct {
	Timestamp time.Time
	Event     string            // "STARTUP" or "SHUTDOWN"
	Reason    string            // signal name, shutdown only
	Counts    logic.EventCounts // included for SHUTDOWN
	Retained  bool              // whether the broker should retain the message
}

// Payload is the MQTT message payload for a mirrored encoder event.
type Payload struct {
	Encoder EncoderPayload `json:"encoder"`
}

// EncoderPayload contains the event details.
type EncoderPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
}

// FormatPayload creates the JSON payload for an encoder event.
func FormatPayload(event logic.Event, at time.Time) ([]byte, error) {
	payload := Payload{
		Encoder: EncoderPayload{
			Timestamp: at.UTC().Format(time.RFC3339Nano),
			Event:     string(event),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for a system event.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string         `json:"timestamp"`
	Event     string         `json:"event"`
	Reason    string         `json:"reason,omitempty"`
	Counts    *CountsPayload `json:"counts,omitempty"`
}

// CountsPayload carries the per-symbol emission totals.
type CountsPayload struct {
	RotaryCW  int `json:"rotary_cw"`
	RotaryCCW int `json:"rotary_ccw"`
	Press     int `json:"btn_press"`
	Release   int `json:"btn_release"`
	Next      int `json:"btn_next"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// Counts are included only on SHUTDOWN, where they summarize the run.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	inner := SystemPayloadInner{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     event.Event,
		Reason:    event.Reason,
	}
	if event.Event == "SHUTDOWN" {
		inner.Counts = &CountsPayload{
			RotaryCW:  event.Counts.RotaryCW,
			RotaryCCW: event.Counts.RotaryCCW,
			Press:     event.Counts.Press,
			Release:   event.Counts.Release,
			Next:      event.Counts.Next,
		}
	}
	return json.Marshal(SystemPayload{System: inner})
}
