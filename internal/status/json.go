package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string                    `json:"event,omitempty"`
	Reason        string                    `json:"reason,omitempty"`
	Ready         bool                      `json:"ready"`
	UptimeSeconds int64                     `json:"uptime_seconds"`
	StartTime     string                    `json:"start_time"`
	Timestamp     string                    `json:"timestamp"`
	MQTT          MQTTStatus                `json:"mqtt"`
	Devices       map[string]DeviceJSON     `json:"devices"`
	Config        ConfigJSON                `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// DeviceJSON is the JSON representation of a DeviceSnapshot.
type DeviceJSON struct {
	Model       string  `json:"model"`
	Status      string  `json:"status"`
	LastSeen    string  `json:"last_seen"`
	LowBattery  bool    `json:"low_battery"`
	Temperature float64 `json:"temperature_c"`
	Humidity    float64 `json:"humidity_pct,omitempty"`
	ReadCount   int64   `json:"read_count"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Broker      string `json:"broker"`
	HTTPPort    string `json:"http_port"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
}

func buildInner(snap Snapshot) StatusInner {
	devices := make(map[string]DeviceJSON, len(snap.Devices))
	ready := false
	for name, d := range snap.Devices {
		devices[name] = DeviceJSON{
			Model:       d.Model,
			Status:      d.Status,
			LastSeen:    d.LastSeen.UTC().Format(time.RFC3339),
			LowBattery:  d.Battery,
			Temperature: d.Temperature,
			Humidity:    d.Humidity,
			ReadCount:   d.ReadCount,
		}
		ready = true
	}

	return StatusInner{
		Ready:         ready,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Devices:       devices,
		Config: ConfigJSON{
			Broker:      snap.Config.Broker,
			HTTPPort:    snap.Config.HTTPPort,
			HeartbeatMs: snap.Config.HeartbeatMs,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
