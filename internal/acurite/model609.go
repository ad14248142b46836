package acurite

// Device609 validates and latches readings from a 00609 outdoor
// sensor. Unlike the 00523, its 8-bit signature is randomized at
// every power-on and is latched from the first accepted candidate.
type Device609 struct {
	deviceID    uint16
	signature   uint16 // 0 until latched
	battery     uint8
	temperature float64
	humidity    float64
}

// NewDevice609 creates a 00609 device binding for deviceID (typically
// DeviceOutdoor). The signature starts unlatched.
func NewDevice609(deviceID uint16) *Device609 {
	return &Device609{deviceID: deviceID}
}

// Validate checks signature (if already latched), channel, checksum,
// and range, fail-fast. On success it latches signature (if not yet
// set), battery, humidity, and temperature.
func (d *Device609) Validate(candidate uint64) bool {
	if candidate == 0 {
		return false
	}

	sig := uint16(candidate >> 32)
	if d.signature != 0 && d.signature != sig {
		return false
	}

	channel := uint8((candidate >> 28) & 0x03)
	if channel != channel609 {
		return false
	}

	checksum := uint8(candidate & 0xff)
	calculated := uint8((((candidate >> 8) & 0xff) +
		((candidate >> 16) & 0xff) +
		((candidate >> 24) & 0xff) +
		(candidate >> 32)) & 0xff)
	if checksum != calculated {
		return false
	}

	raw := uint16((candidate >> 15) & 0x1fff)
	var signedTemp int32
	if raw&0x1000 == 0x1000 {
		signedTemp = -(int32(0x2000) - int32(raw))
	} else {
		signedTemp = int32(raw)
	}
	tempC := float64(signedTemp) / 20

	hum := float64((candidate >> 8) & 0x7f)
	if hum < minHum || hum > maxHum || tempC < minTempC || tempC > maxTempC {
		return false
	}

	bat := uint8((candidate >> 30) & 0x03)
	if d.signature == 0 {
		d.signature = sig
	}
	d.battery = bat
	d.humidity = hum
	d.temperature = tempC
	return true
}

// CreatePayload builds the wire record for the last latched reading.
func (d *Device609) CreatePayload(status uint8) Payload {
	return Payload{
		Tag:         Tag,
		Model:       ModelAcurite609,
		Device:      d.deviceID,
		Status:      status,
		Battery:     d.battery,
		Temperature: int16(d.temperature * 10),
		Humidity:    int16(d.humidity * 10),
	}
}

// Model609 is the framing machine + device registry for the 00609.
type Model609 struct {
	frame   *framingState609
	Devices []*Device609
}

// NewModel609 creates a 00609 model bound to the given devices
// (typically just DeviceOutdoor).
func NewModel609(devices ...*Device609) *Model609 {
	return &Model609{frame: newFramingState609(), Devices: devices}
}

// ParseRF feeds one edge pulse into the 00609 framing machine. A
// non-zero, ok=true result is a completed 40-bit candidate word ready
// for device validation.
func (m *Model609) ParseRF(durationUS uint32, level uint8) (uint64, bool) {
	return m.frame.step(level, durationUS)
}

// Clear resets the model's framing state between dispatcher calls.
func (m *Model609) Clear() {
	m.frame.clear()
}

// accept walks the model's devices and returns the payload of the
// first one that validates candidate.
func (m *Model609) accept(candidate uint64) (Payload, bool) {
	for _, d := range m.Devices {
		if d.Validate(candidate) {
			return d.CreatePayload(StatusOK), true
		}
	}
	return Payload{}, false
}
