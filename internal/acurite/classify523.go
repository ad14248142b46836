package acurite

// signalClass523 enumerates the pulse classes the 00523 demodulator
// distinguishes. Values are deliberately small and contiguous so they
// can key a dense state-transition table if needed later.
type signalClass523 int

const (
	class523Inv signalClass523 = iota
	class523Bit0Off
	class523Bit0On
	class523Bit1Off
	class523Bit1On
	class523BitstreamOff
	class523BitstreamOn
	class523ChunkEnd
)

// classify523 maps a single (level, duration) pulse to its signal
// class per the 00523 classification table. Intervals are closed at
// the low end, open at the high end.
func classify523(level uint8, durationUS uint32) signalClass523 {
	switch level {
	case 0:
		switch {
		case durationUS >= 100 && durationUS < 300:
			return class523Bit0Off
		case durationUS >= 300 && durationUS < 500:
			return class523Bit1Off
		case durationUS >= 500 && durationUS < 700:
			return class523BitstreamOff
		}
	case 1:
		switch {
		case durationUS >= 100 && durationUS < 300:
			return class523Bit1On
		case durationUS >= 300 && durationUS < 500:
			return class523Bit0On
		case durationUS >= 500 && durationUS < 700:
			return class523BitstreamOn
		case durationUS >= 20000 && durationUS < 60000:
			return class523ChunkEnd
		}
	}
	return class523Inv
}
