// Package acurite contains pure business logic for demodulating and
// validating AcuRite 00523 and 00609 RF temperature sensor transmissions.
// This package has NO external dependencies (no GPIO, MQTT, or OS
// access). Edge timing is always injectable via EdgeEvent values; the
// only wall-clock use is the timeout in Session.Available.
package acurite

// EdgeEvent is a single pulse sample handed to the core by an edge
// source adapter: the logical level of the pulse that just ended, and
// how long it lasted in microseconds.
type EdgeEvent struct {
	Level      uint8
	DurationUS uint32
}

// Wire-stable identifiers shared between sender and receiver.
const (
	Tag = 0x38073162

	ModelAcurite523 = 1592
	ModelAcurite609 = 6585

	DeviceFreezer = 9690
	DeviceFridge  = 7784
	DeviceOutdoor = 8501
)

// Status values carried in a Payload.
const (
	StatusUnknown  uint8 = 0
	StatusOK       uint8 = 1
	StatusReadFail uint8 = 2
	StatusTimeout  uint8 = 3
	StatusNoData   uint8 = 4
)

// Hardcoded 00523 signatures. Discovered empirically and treated as
// immutable device identifiers (see original_source/esp32/acurite523.cpp).
const (
	Sig523Freezer uint16 = 0xC049
	Sig523Fridge  uint16 = 0xC07C
)

// 00609's channel field must read this value; any other channel
// indicates a foreign or non-outdoor-sensor transmission.
const channel609 = 2

// Bit lengths of the candidate bitstream per model.
const (
	bitLength523 = 48
	bitLength609 = 40
)

// Acceptable physical ranges (°C / %RH).
const (
	minTempC = -40.0
	maxTempC = 70.0
	minHum   = 1.0
	maxHum   = 99.0
)
