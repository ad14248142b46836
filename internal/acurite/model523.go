package acurite

// Device523 validates and latches readings from a 00523 fridge/freezer
// device. Its signature is preloaded from a constant table, since
// these devices do not randomize their signature at power-on.
type Device523 struct {
	deviceID    uint16
	signature   uint16
	battery     uint8
	temperature float64
}

// NewDevice523 creates a 00523 device binding for deviceID, which must
// be DeviceFreezer or DeviceFridge.
func NewDevice523(deviceID uint16) *Device523 {
	d := &Device523{deviceID: deviceID}
	switch deviceID {
	case DeviceFreezer:
		d.signature = Sig523Freezer
	case DeviceFridge:
		d.signature = Sig523Fridge
	}
	return d
}

// Validate checks signature, checksum, parity, and range, fail-fast.
// On success it latches battery and temperature.
func (d *Device523) Validate(candidate uint64) bool {
	if candidate == 0 {
		return false
	}

	sig := uint16(candidate >> 32)
	if sig != d.signature {
		return false
	}

	checksum := uint8(candidate & 0xff)
	calculated := uint8((((candidate >> 8) & 0xff) +
		((candidate >> 16) & 0xff) +
		((candidate >> 24) & 0xff) +
		((candidate >> 32) & 0xff) +
		(candidate >> 40)) & 0xff)
	if checksum != calculated {
		return false
	}

	parity1 := uint8((candidate >> 15) & 1)
	byte1 := uint8((candidate >> 8) & 0x7f)
	parity2 := uint8((candidate >> 23) & 1)
	byte2 := uint8((candidate >> 16) & 0x7f)
	if !validateParity7(parity1, byte1) || !validateParity7(parity2, byte2) {
		return false
	}

	raw := (uint16(byte2) << 7) | uint16(byte1)
	tempC := (float64(raw) - 1800) / 18
	if tempC < minTempC || tempC >= maxTempC {
		return false
	}

	bat := uint8((candidate >> 30) & 0x03)
	d.battery = bat
	d.temperature = tempC
	return true
}

// CreatePayload builds the wire record for the last latched reading.
// Humidity is always 0: the 00523 does not report it.
func (d *Device523) CreatePayload(status uint8) Payload {
	return Payload{
		Tag:         Tag,
		Model:       ModelAcurite523,
		Device:      d.deviceID,
		Status:      status,
		Battery:     d.battery,
		Temperature: int16(d.temperature * 10),
		Humidity:    0,
	}
}

// validateParity7 checks that the population count of a 7-bit value's
// 1-bits has parity equal to the adjacent parity bit (1 = odd, 0 = even).
func validateParity7(parity, value uint8) bool {
	onBits := 0
	for i := 0; i < 7; i++ {
		onBits += int(value & 1)
		value >>= 1
	}
	return uint8(onBits%2) == parity
}

// Model523 is the framing machine + device registry for the 00523.
type Model523 struct {
	frame   *framingState523
	Devices []*Device523
}

// NewModel523 creates a 00523 model bound to the given devices
// (typically DeviceFreezer and DeviceFridge).
func NewModel523(devices ...*Device523) *Model523 {
	return &Model523{frame: newFramingState523(), Devices: devices}
}

// ParseRF feeds one edge pulse into the 00523 framing machine. A
// non-zero, ok=true result is a completed 48-bit candidate word ready
// for device validation.
func (m *Model523) ParseRF(durationUS uint32, level uint8) (uint64, bool) {
	return m.frame.step(level, durationUS)
}

// Clear resets the model's bitstream accumulation state between
// dispatcher calls, preserving mid-burst chunk membership.
func (m *Model523) Clear() {
	m.frame.clear()
}

// accept walks the model's devices and returns the payload of the
// first one that validates candidate.
func (m *Model523) accept(candidate uint64) (Payload, bool) {
	for _, d := range m.Devices {
		if d.Validate(candidate) {
			return d.CreatePayload(StatusOK), true
		}
	}
	return Payload{}, false
}
