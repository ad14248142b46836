package acurite

// Model is the closed set of per-model demodulators the Dispatcher
// fans edge events to. The set of models is small and fixed (00523,
// 00609), so a small interface over concrete types is preferred here
// over an open class hierarchy.
type Model interface {
	// ParseRF feeds one edge pulse into the model's framing machine.
	// A non-zero, ok=true result is a completed candidate word.
	ParseRF(durationUS uint32, level uint8) (uint64, bool)

	// Clear resets per-call timing state (preserving or not preserving
	// chunk membership, per the model's own semantics).
	Clear()

	// accept walks the model's devices and returns the payload of the
	// first one that validates candidate.
	accept(candidate uint64) (Payload, bool)
}

// Dispatcher fans each edge event to every registered model, stopping
// at the first device that accepts the resulting candidate word.
type Dispatcher struct {
	models []Model
}

// NewDispatcher creates a Dispatcher over the given models, polled in
// the given order. Two models cannot both produce a candidate on the
// same event, since their classification tables are disjoint, so
// registration order only matters as a tie-breaking convention.
func NewDispatcher(models ...Model) *Dispatcher {
	return &Dispatcher{models: models}
}

// Parse feeds one edge event to every model and returns the payload of
// the first device to accept a resulting candidate. On acceptance,
// every model is cleared so the rest of the current burst is
// discarded (the sensor repeats the same block 3-6 times per burst;
// the first to validate wins).
func (d *Dispatcher) Parse(ev EdgeEvent) (Payload, bool) {
	for _, m := range d.models {
		candidate, ok := m.ParseRF(ev.DurationUS, ev.Level)
		if !ok {
			continue
		}
		if payload, accepted := m.accept(candidate); accepted {
			d.clearAll()
			return payload, true
		}
	}
	return Payload{}, false
}

// Reset clears every registered model's framing state. Called once at
// session start.
func (d *Dispatcher) Reset() {
	d.clearAll()
}

func (d *Dispatcher) clearAll() {
	for _, m := range d.models {
		m.Clear()
	}
}
