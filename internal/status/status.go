// Package status provides a thread-safe status tracker for the
// acurite-monitor daemon. It is designed to be read by HTTP handlers.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/acurite-monitor/internal/acurite"
)

// Config contains daemon configuration for display.
type Config struct {
	Broker      string
	HTTPPort    string
	HeartbeatMs int64
}

// DeviceSnapshot is a point-in-time view of one tracked sensor device.
type DeviceSnapshot struct {
	Name        string
	Model       string
	LastSeen    time.Time
	Status      string
	Battery     bool // true = low battery
	Temperature float64
	Humidity    float64 // 0 for 00523, which reports no humidity
	ReadCount   int64
}

// Snapshot is a point-in-time view of daemon state. It is a value type
// — safe to use after the lock is released.
type Snapshot struct {
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Devices       map[string]DeviceSnapshot
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu            sync.RWMutex
	startTime     time.Time
	cfg           Config
	mqttConnected bool
	devices       map[string]DeviceSnapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		startTime: startTime,
		cfg:       cfg,
		devices:   make(map[string]DeviceSnapshot),
	}
}

// deviceName maps a device ID constant to a human-readable label.
func deviceName(deviceID uint16) string {
	switch deviceID {
	case acurite.DeviceFreezer:
		return "freezer"
	case acurite.DeviceFridge:
		return "fridge"
	case acurite.DeviceOutdoor:
		return "outdoor"
	default:
		return "unknown"
	}
}

func modelName(model uint16) string {
	switch model {
	case acurite.ModelAcurite523:
		return "00523"
	case acurite.ModelAcurite609:
		return "00609"
	default:
		return "unknown"
	}
}

func statusName(status uint8) string {
	switch status {
	case acurite.StatusOK:
		return "OK"
	case acurite.StatusReadFail:
		return "READ_FAIL"
	case acurite.StatusTimeout:
		return "TIMEOUT"
	case acurite.StatusNoData:
		return "NO_DATA"
	default:
		return "UNKNOWN"
	}
}

// Record stores a decoded reading, keyed by device.
func (t *Tracker) Record(payload acurite.Payload, seenAt time.Time) {
	name := deviceName(payload.Device)

	t.mu.Lock()
	prev := t.devices[name]
	t.devices[name] = DeviceSnapshot{
		Name:        name,
		Model:       modelName(payload.Model),
		LastSeen:    seenAt,
		Status:      statusName(payload.Status),
		Battery:     payload.Battery != 0,
		Temperature: float64(payload.Temperature) / 10,
		Humidity:    float64(payload.Humidity) / 10,
		ReadCount:   prev.ReadCount + 1,
	}
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.mqttConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state. The Now
// field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	devices := make(map[string]DeviceSnapshot, len(t.devices))
	for k, v := range t.devices {
		devices[k] = v
	}
	s := Snapshot{
		StartTime:     t.startTime,
		MQTTConnected: t.mqttConnected,
		Devices:       devices,
		Config:        t.cfg,
	}
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
