package web

import (
	"encoding/json"

	"github.com/sweeney/acurite-monitor/internal/acurite"
)

// ReadingJSON is the JSON form of a decoded reading, pushed to
// websocket clients as it is produced.
type ReadingJSON struct {
	Device      string  `json:"device"`
	Model       string  `json:"model"`
	Status      string  `json:"status"`
	Temperature float64 `json:"temperature_c"`
	Humidity    float64 `json:"humidity_pct,omitempty"`
}

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

func formatReading(p acurite.Payload) []byte {
	r := ReadingJSON{
		Device:      deviceName(p.Device),
		Model:       modelName(p.Model),
		Status:      "OK",
		Temperature: float64(p.Temperature) / 10,
		Humidity:    float64(p.Humidity) / 10,
	}
	data, _ := json.Marshal(r)
	return data
}
