// Command encoderd polls a rotary encoder and two push-buttons over GPIO
// and prints one event symbol per line on stdout. The status LED is lit
// for exactly as long as the process is alive: high right after line
// acquisition, low again on every exit path.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tvargenta/encoderd/internal/emit"
	"github.com/tvargenta/encoderd/internal/gpio"
	"github.com/tvargenta/encoderd/internal/logic"
	"github.com/tvargenta/encoderd/internal/mqtt"
)

// pollInterval is the fixed sampling period. It bounds worst-case input
// latency and keeps CPU usage negligible. The wiring and timings are
// constants: this daemon takes no flags and reads no config file.
const pollInterval = 3 * time.Millisecond

// envMQTTBroker optionally enables the telemetry mirror, e.g.
// ENCODER_MQTT_BROKER=tcp://192.168.1.200:1883. Unset means stdout only.
const envMQTTBroker = "ENCODER_MQTT_BROKER"

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run() error {
	panel, err := gpio.Open()
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer panel.Close()

	out := emit.NewStream(os.Stdout)

	var pub mqtt.Publisher
	if broker := os.Getenv(envMQTTBroker); broker != "" {
		p, err := mqtt.NewRealPublisher(broker)
		if err != nil {
			// Mirror only; the stdout stream does not depend on it.
			log.Printf("mqtt mirror disabled: %v", err)
		} else {
			pub = p
			defer p.Close()
			startup := mqtt.SystemEvent{Timestamp: time.Now(), Event: "STARTUP", Retained: true}
			if err := pub.PublishSystem(startup); err != nil {
				log.Printf("failed to publish startup event: %v", err)
			} else {
				log.Printf("mqtt mirror enabled: broker=%s", broker)
			}
		}
	}

	log.Printf("started: chip=%s poll=%v next-debounce=%v", gpio.Chip, pollInterval, logic.NextDebounce)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(panel, out, pub, time.Now, ticker.C, sigCh)
}

// runLoop polls the panel and emits decoded events until a termination
// signal arrives. The clock, tick source and signal source are
// injectable so tests can drive the loop deterministically. pub may be
// nil when the mirror is disabled.
func runLoop(panel gpio.Panel, out emit.Writer, pub mqtt.Publisher, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	decoder := logic.NewDecoder(logic.NextDebounce)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			counts := decoder.Counts()
			log.Printf("emitted: rotary_cw=%d rotary_ccw=%d press=%d release=%d next=%d",
				counts.RotaryCW, counts.RotaryCCW, counts.Press, counts.Release, counts.Next)
			if pub != nil {
				event := mqtt.SystemEvent{
					Timestamp: now(),
					Event:     "SHUTDOWN",
					Reason:    signalName(s),
					Counts:    counts,
					Retained:  true,
				}
				if err := pub.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				}
			}
			return nil

		case <-tick:
			levels, err := panel.Read()
			if err != nil {
				// The lines stay requested; skip this tick and retry.
				log.Printf("gpio read error: %v", err)
				continue
			}

			t := now()
			events := decoder.Process(logic.Input{
				Clock:  levels.Clock,
				Data:   levels.Data,
				Button: levels.Button,
				Next:   levels.Next,
				Time:   t,
			})

			for _, event := range events {
				if err := out.Emit(event); err != nil {
					log.Printf("emit error: %v", err)
				}
				if pub != nil {
					if err := pub.Publish(event, t); err != nil {
						log.Printf("mqtt mirror error: %v", err)
					}
				}
			}
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
