//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/acurite-monitor/internal/acurite"
)

// RealReader watches a GPIO line for edges on actual hardware using
// the Linux GPIO character device, converting each edge into an
// acurite.EdgeEvent: the level of the pulse that just ended and how
// long it lasted, in microseconds.
type RealReader struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line

	events chan acurite.EdgeEvent

	lastTimestampUS   uint64
	haveLastTimestamp bool
}

// NewRealReader creates a GPIO edge reader for the given BCM pin
// number on actual Raspberry Pi hardware.
func NewRealReader(pin int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealReader{
		chip:   chip,
		events: make(chan acurite.EdgeEvent, 256),
	}

	// Request the line as input with pull-down to match Pi boot
	// defaults, watching both edges so the durations between them can
	// be derived from consecutive event timestamps.
	line, err := chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullDown,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(r.handleEdge),
	)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request rf pin %d: %w", pin, err)
	}
	r.line = line

	return r, nil
}

// handleEdge is invoked by go-gpiocdev on every detected edge. The
// level reported to the core is the level of the pulse that just
// ended: a RisingEdge means the line was low (0) until now, so the
// pulse that ended was level 0; a FallingEdge means the pulse that
// ended was level 1.
func (r *RealReader) handleEdge(evt gpiocdev.LineEvent) {
	tsUS := uint64(evt.Timestamp / 1000)

	if !r.haveLastTimestamp {
		r.lastTimestampUS = tsUS
		r.haveLastTimestamp = true
		return
	}

	duration := tsUS - r.lastTimestampUS
	r.lastTimestampUS = tsUS

	if duration < minPulseUS {
		return
	}

	var level uint8
	if evt.Type == gpiocdev.LineEventRisingEdge {
		level = 0
	} else {
		level = 1
	}

	select {
	case r.events <- acurite.EdgeEvent{Level: level, DurationUS: uint32(duration)}:
	default:
		// Consumer is falling behind; drop the pulse rather than block
		// the interrupt handler.
	}
}

// Events returns the channel of edge pulses.
func (r *RealReader) Events() <-chan acurite.EdgeEvent {
	return r.events
}

// Close releases GPIO resources.
func (r *RealReader) Close() error {
	var errs []error

	// Reconfigure to match Raspberry Pi boot defaults (input with
	// pull-down) before closing, so the pin is left in a clean state
	// for system shutdown/reboot.
	if r.line != nil {
		if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure rf pin: %w", err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rf pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	close(r.events)

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
