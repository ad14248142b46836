// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/acurite-monitor/internal/acurite"
)

// Topic is the MQTT topic for decoded sensor readings. The payload is
// the raw packed wire format, not JSON, so downstream consumers share
// the exact struct layout the core produces.
const Topic = "acurite/sensor/readings"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "acurite/sensor/system"

// Publisher publishes decoded readings and system events to MQTT.
type Publisher interface {
	// Publish sends a decoded sensor reading to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(payload acurite.Payload) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (startup, shutdown,
// heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool

	Heartbeat *HeartbeatInfo // set only for HEARTBEAT events
}

// HeartbeatInfo carries per-device reading counts since startup.
type HeartbeatInfo struct {
	UptimeSeconds int64
	Readings      map[string]int64 // device name -> accepted reading count
}

// SystemPayload is the JSON wire format for a system event.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string                 `json:"timestamp"`
	Event     string                 `json:"event"`
	Reason    string                 `json:"reason,omitempty"`
	Heartbeat *HeartbeatPayloadInner `json:"heartbeat,omitempty"`
}

// HeartbeatPayloadInner is the JSON form of HeartbeatInfo.
type HeartbeatPayloadInner struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	Readings      map[string]int64 `json:"readings,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	if event.Heartbeat != nil {
		payload.System.Heartbeat = &HeartbeatPayloadInner{
			UptimeSeconds: event.Heartbeat.UptimeSeconds,
			Readings:      event.Heartbeat.Readings,
		}
	}
	return json.Marshal(payload)
}
