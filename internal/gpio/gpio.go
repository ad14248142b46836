// Package gpio provides RF edge-pulse reading with hardware
// abstraction. The real implementation watches both edges of the
// receiver's data pin via the Linux GPIO character device. The fake
// implementation allows testing without hardware.
package gpio

import "github.com/sweeney/acurite-monitor/internal/acurite"

// Reader produces a stream of edge-transition pulses from the
// receiver's data pin.
type Reader interface {
	// Events returns the channel of edge pulses. It is closed when
	// the reader is closed or the underlying source ends.
	Events() <-chan acurite.EdgeEvent

	// Close releases GPIO resources.
	Close() error
}

// DefaultPin is the default BCM pin number for the RF receiver's data
// output, matching the wiring used during development.
const DefaultPin = 27

// minPulseUS is the shortest pulse the core will accept; anything
// shorter is noise and is dropped before it ever reaches the
// dispatcher.
const minPulseUS = 100
