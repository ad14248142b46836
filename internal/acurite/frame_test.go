package acurite

import "testing"

func TestFrame523RoundTrip(t *testing.T) {
	want := buildCandidate523(Sig523Freezer, 0, 0x3C, 0x0B)
	got, ok := feed523(pulses523(want))
	if !ok {
		t.Fatal("expected a candidate to be emitted")
	}
	if got != want {
		t.Errorf("round trip mismatch: got %#x, want %#x", got, want)
	}
}

func TestFrame609RoundTrip(t *testing.T) {
	want := buildCandidate609(0xC0, 2, 694, 37)
	got, ok := feed609(pulses609(want))
	if !ok {
		t.Fatal("expected a candidate to be emitted")
	}
	if got != want {
		t.Errorf("round trip mismatch: got %#x, want %#x", got, want)
	}
}

// TestFrame523BitstreamSizeInvariant checks that bitstream_size never
// exceeds BIT_LENGTH, for any sequence of pulses, including ones well
// past a full bitstream.
func TestFrame523BitstreamSizeInvariant(t *testing.T) {
	f := newFramingState523()
	evs := pulses523(0xFFFFFFFFFFFF)
	evs = append(evs, pulses523(0xFFFFFFFFFFFF)...) // two back-to-back bursts
	for _, ev := range evs {
		f.step(ev.Level, ev.DurationUS)
		if f.bitstreamSize > bitLength523 {
			t.Fatalf("bitstreamSize exceeded BIT_LENGTH: %d", f.bitstreamSize)
		}
	}
}

func TestFrame609BitstreamSizeInvariant(t *testing.T) {
	f := newFramingState609()
	evs := pulses609(0xFFFFFFFFFF)
	evs = append(evs, pulses609(0xFFFFFFFFFF)...)
	for _, ev := range evs {
		f.step(ev.Level, ev.DurationUS)
		if f.bitstreamSize > bitLength609 {
			t.Fatalf("bitstreamSize exceeded BIT_LENGTH: %d", f.bitstreamSize)
		}
	}
}

// TestFrame523ClearIdempotent checks that clear() run twice in a row
// is equivalent to running it once.
func TestFrame523ClearIdempotent(t *testing.T) {
	f := newFramingState523()
	for _, ev := range pulses523(0x123456789ABC)[:10] {
		f.step(ev.Level, ev.DurationUS)
	}
	f.clear()
	once := *f
	f.clear()
	twice := *f
	if once != twice {
		t.Errorf("clear() is not idempotent: %+v != %+v", once, twice)
	}
}

func TestFrame609ClearIdempotent(t *testing.T) {
	f := newFramingState609()
	for _, ev := range pulses609(0x123456789A)[:10] {
		f.step(ev.Level, ev.DurationUS)
	}
	f.clear()
	once := *f
	f.clear()
	twice := *f
	if once != twice {
		t.Errorf("clear() is not idempotent: %+v != %+v", once, twice)
	}
}

// TestFrame523AllInvalidEmitsNothing checks that a stream composed
// entirely of invalid-classifying pulses emits no candidates and
// leaves chunk_open false.
func TestFrame523AllInvalidEmitsNothing(t *testing.T) {
	f := newFramingState523()
	for i := 0; i < 50; i++ {
		if _, ok := f.step(1, 99); ok { // duration 99us classifies as INV on any level
			t.Fatal("expected no candidate from an all-invalid stream")
		}
	}
	if f.chunkOpen {
		t.Error("expected chunkOpen to remain false")
	}
}

// TestFrame523PreambleStarvation is scenario S6: only three
// BITSTREAM_ON pulses (one short of the four required) followed by
// bit signals must not open a chunk or emit a candidate.
func TestFrame523PreambleStarvation(t *testing.T) {
	f := newFramingState523()
	for i := 0; i < 3; i++ {
		f.step(1, 600) // BITSTREAM_ON
	}
	// Feed a bit pair; with no chunk open this cannot accumulate.
	f.step(0, 200) // BIT_0_OFF
	if _, ok := f.step(1, 400); ok { // BIT_0_ON
		t.Fatal("expected no candidate without a complete preamble")
	}
	if f.chunkOpen {
		t.Error("chunkOpen should remain false after preamble starvation")
	}
}

func TestFrame609AllInvalidEmitsNothing(t *testing.T) {
	f := newFramingState609()
	for i := 0; i < 50; i++ {
		if _, ok := f.step(0, 5000); ok { // duration 5000us on level 0 classifies as INV
			t.Fatal("expected no candidate from an all-invalid stream")
		}
	}
	if f.chunkOpen {
		t.Error("expected chunkOpen to remain false")
	}
}
