package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/tvargenta/encoderd/internal/logic"
)

// backlogCapacity bounds how many events are held while disconnected.
// At encoder speeds this covers several minutes of broker outage.
const backlogCapacity = 256

// RealPublisher publishes to an actual MQTT broker. Events that arrive
// while the connection is down are queued and replayed on reconnect.
type RealPublisher struct {
	client paho.Client

	mu      sync.Mutex
	pending *backlog
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	p := &RealPublisher{pending: newBacklog(backlogCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("encoderd").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.replay)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	p.client = client
	return p, nil
}

// Publish mirrors an encoder event at QoS 0. It never waits on the
// broker: the caller is a 3ms polling loop, so delivery is handed to the
// paho client asynchronously.
func (p *RealPublisher) Publish(event logic.Event, at time.Time) error {
	payload, err := FormatPayload(event, at)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	if !p.client.IsConnected() {
		p.queue(msg{topic: Topic, qos: 0, payload: payload})
		return nil
	}

	p.client.Publish(Topic, 0, false, payload)
	return nil
}

// PublishSystem sends a system lifecycle event at QoS 1 — delivery of
// SHUTDOWN in particular is worth waiting for.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	if !p.client.IsConnected() {
		p.queue(msg{topic: TopicSystem, qos: 1, retained: event.Retained, payload: payload})
		return nil
	}

	token := p.client.Publish(TopicSystem, 1, event.Retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish system timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}

	return nil
}

func (p *RealPublisher) queue(m msg) {
	p.mu.Lock()
	p.pending.add(m)
	p.mu.Unlock()
}

// replay flushes the backlog once the connection is (re)established.
// Runs on the paho client's callback goroutine.
func (p *RealPublisher) replay(c paho.Client) {
	p.mu.Lock()
	msgs, dropped := p.pending.drain()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	for _, m := range msgs {
		c.Publish(m.topic, m.qos, m.retained, m.payload)
	}
	if dropped > 0 {
		log.Printf("mqtt: replayed %d buffered messages, %d dropped to overflow", len(msgs), dropped)
	} else {
		log.Printf("mqtt: replayed %d buffered messages", len(msgs))
	}
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
