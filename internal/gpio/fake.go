package gpio

import "github.com/sweeney/acurite-monitor/internal/acurite"

// FakeReader is a test double that replays a scripted stream of edge
// pulses on its Events channel, for exercising the core without
// hardware.
type FakeReader struct {
	events chan acurite.EdgeEvent
	closed bool
}

// NewFakeReader creates a FakeReader that will emit the given pulses,
// in order, as soon as it is read from. The channel has room for 256
// pushed pulses beyond the scripted ones.
func NewFakeReader(pulses []acurite.EdgeEvent) *FakeReader {
	f := &FakeReader{events: make(chan acurite.EdgeEvent, len(pulses)+256)}
	for _, p := range pulses {
		f.events <- p
	}
	return f
}

// Events returns the channel of scripted edge pulses.
func (f *FakeReader) Events() <-chan acurite.EdgeEvent {
	return f.events
}

// Push appends another pulse to the stream, for tests that feed pulses
// incrementally. It does not block while fewer than 256 pushed pulses
// are unread.
func (f *FakeReader) Push(ev acurite.EdgeEvent) {
	f.events <- ev
}

// Close marks the reader as closed and closes the events channel.
func (f *FakeReader) Close() error {
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

// Closed reports whether Close has been called.
func (f *FakeReader) Closed() bool {
	return f.closed
}
