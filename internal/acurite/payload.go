package acurite

import (
	"bytes"
	"encoding/binary"
)

// Payload is the wire-stable, packed, little-endian record this system
// emits on every successful decode. Its field widths sum to 14 bytes
// with no alignment padding, so it round-trips through encoding/binary
// without a custom marshaler.
type Payload struct {
	Tag         uint32
	Model       uint16
	Device      uint16
	Status      uint8
	Battery     uint8
	Temperature int16 // Celsius x 10
	Humidity    int16 // percent x 10; 0 for 00523
}

// PayloadSize is the number of bytes a Payload occupies on the wire.
const PayloadSize = 14

// Pack serializes a Payload into its 14-byte wire representation.
func (p Payload) Pack() []byte {
	buf := new(bytes.Buffer)
	buf.Grow(PayloadSize)
	// binary.Write cannot fail for fixed-size values written to a
	// bytes.Buffer.
	_ = binary.Write(buf, binary.LittleEndian, p)
	return buf.Bytes()
}

// UnpackPayload parses a 14-byte wire record back into a Payload.
func UnpackPayload(b []byte) (Payload, error) {
	var p Payload
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &p); err != nil {
		return Payload{}, err
	}
	return p, nil
}
