package acurite

// signalClass609 enumerates the pulse classes the 00609 demodulator
// distinguishes. 00609 only pulse-width-encodes the ON half; the OFF
// half is a fixed idle.
type signalClass609 int

const (
	class609Inv signalClass609 = iota
	class609Off
	class609Bit0
	class609Bit1
	class609BitstreamStart
	class609BitstreamEnd
	class609ChunkStart
	class609ChunkEnd
)

// classify609 maps a single (level, duration) pulse to its signal
// class per the 00609 classification table.
func classify609(level uint8, durationUS uint32) signalClass609 {
	switch level {
	case 0:
		if durationUS < 1200 {
			return class609Off
		}
	case 1:
		switch {
		case durationUS < 300:
			return class609ChunkStart
		case durationUS >= 300 && durationUS < 1200:
			return class609Bit0
		case durationUS >= 1200 && durationUS < 3000:
			return class609Bit1
		case durationUS >= 8700 && durationUS < 9000:
			return class609BitstreamStart
		case durationUS >= 10000 && durationUS < 20000:
			return class609BitstreamEnd
		case durationUS >= 20000 && durationUS < 40000:
			return class609ChunkEnd
		}
	}
	return class609Inv
}
