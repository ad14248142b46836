package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/acurite-monitor/internal/acurite"
)

// bufferCapacity bounds how many messages RealPublisher holds while
// the broker connection is down. At one reading every few seconds
// per sensor, this covers several minutes of an outage before the
// oldest readings start getting dropped.
const bufferCapacity = 256

// RealPublisher publishes to an actual MQTT broker. While the
// connection is down, messages are held in a ring buffer and flushed
// in order once the client reconnects, instead of being silently
// lost.
type RealPublisher struct {
	client paho.Client
	topic  string

	mu  sync.Mutex
	buf *ringBuffer
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	p := &RealPublisher{
		topic: Topic,
		buf:   newRingBuffer(bufferCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("acurite-monitor").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.flushBuffer)

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

// flushBuffer republishes everything accumulated while disconnected,
// oldest first. Registered as paho's OnConnectHandler, so it runs on
// both the initial connect and every reconnect.
func (p *RealPublisher) flushBuffer(client paho.Client) {
	p.mu.Lock()
	pending := p.buf.drainAll()
	p.mu.Unlock()

	for _, msg := range pending {
		token := client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		token.Wait()
	}
}

// Publish sends a decoded reading to the MQTT broker as its raw
// packed wire bytes. If the broker is currently unreachable, the
// reading is buffered instead of discarded.
func (p *RealPublisher) Publish(payload acurite.Payload) error {
	wire := payload.Pack()

	// QoS 0 (at-most-once), not retained: a missed reading is
	// superseded by the next transmission within seconds.
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.buf.push(bufferedMsg{topic: p.topic, payload: wire, qos: 0, retained: false})
		p.mu.Unlock()
		return nil
	}

	token := p.client.Publish(p.topic, 0, false, wire)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// PublishSystem sends a system lifecycle event to the MQTT broker,
// buffering it if the broker is currently unreachable.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) so shutdown/startup events aren't lost.
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.buf.push(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
		p.mu.Unlock()
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

// IsConnected reports whether the broker connection is active.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}
