package internal

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/tvargenta/encoderd/internal/emit"
	"github.com/tvargenta/encoderd/internal/gpio"
	"github.com/tvargenta/encoderd/internal/logic"
	"github.com/tvargenta/encoderd/internal/mqtt"
)

// TestIntegrationFullFlow tests the complete flow from scripted GPIO
// levels to the output stream and the MQTT mirror, using fakes.
func TestIntegrationFullFlow(t *testing.T) {
	idle := gpio.Levels{Clock: true, Data: true, Button: true, Next: true}
	mut := func(f func(*gpio.Levels)) gpio.Levels {
		lv := idle
		f(&lv)
		return lv
	}

	// One CW detent, one CCW detent, a press/release cycle, and a next
	// press. Tick period 100ms so the next press clears its own window.
	samples := []gpio.Levels{
		idle, // t=0, primes the decoder
		mut(func(lv *gpio.Levels) { lv.Clock = false }),                  // t=100ms: CW
		idle,                                                             // t=200ms: clock back high
		mut(func(lv *gpio.Levels) { lv.Clock = false; lv.Data = false }), // t=300ms: CCW
		idle,                              // t=400ms
		mut(func(lv *gpio.Levels) { lv.Button = false }), // t=500ms: press
		mut(func(lv *gpio.Levels) { lv.Button = false }), // t=600ms: held, no duplicate
		idle,                              // t=700ms: release
		mut(func(lv *gpio.Levels) { lv.Next = false }), // t=800ms: next
		idle, // t=900ms
	}

	panel := gpio.NewFakePanel(samples)
	var buf bytes.Buffer
	out := emit.NewStream(&buf)
	pub := mqtt.NewFakePublisher()
	decoder := logic.NewDecoder(logic.NextDebounce)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pollInterval := 100 * time.Millisecond

	// Simulate the main loop.
	for i := range samples {
		levels, err := panel.Read()
		if err != nil {
			t.Fatalf("sample %d: gpio read error: %v", i, err)
		}

		now := start.Add(time.Duration(i) * pollInterval)
		events := decoder.Process(logic.Input{
			Clock:  levels.Clock,
			Data:   levels.Data,
			Button: levels.Button,
			Next:   levels.Next,
			Time:   now,
		})

		for _, event := range events {
			if err := out.Emit(event); err != nil {
				t.Fatalf("sample %d: emit error: %v", i, err)
			}
			if err := pub.Publish(event, now); err != nil {
				t.Fatalf("sample %d: publish error: %v", i, err)
			}
		}
	}

	// The stream is the contract: five symbols, one per line, in order.
	wantStream := "ROTARY_CW\nROTARY_CCW\nBTN_PRESS\nBTN_RELEASE\nBTN_NEXT\n"
	if got := buf.String(); got != wantStream {
		t.Errorf("stream:\ngot  %q\nwant %q", got, wantStream)
	}

	// The mirror saw the same events.
	if len(pub.Events) != 5 {
		t.Fatalf("expected 5 mirrored events, got %d", len(pub.Events))
	}
	for i, payload := range pub.Payloads {
		var p mqtt.Payload
		if err := json.Unmarshal(payload, &p); err != nil {
			t.Fatalf("payload %d: %v", i, err)
		}
		if p.Encoder.Event != string(pub.Events[i]) {
			t.Errorf("payload %d: got %q, want %q", i, p.Encoder.Event, pub.Events[i])
		}
	}

	// Counts match what went down the stream.
	counts := decoder.Counts()
	want := logic.EventCounts{RotaryCW: 1, RotaryCCW: 1, Press: 1, Release: 1, Next: 1}
	if counts != want {
		t.Errorf("counts: got %+v, want %+v", counts, want)
	}

	// Teardown: LED dark, and a second Close stays safe.
	if err := panel.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if panel.LED {
		t.Error("LED should be dark after Close")
	}
	if err := panel.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}
