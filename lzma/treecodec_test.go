package lzma

import (
	"bytes"
	"testing"
)

func TestTreeCodecRoundTrip(t *testing.T) {
	const bits = 6
	syms := []uint32{0, 1, 17, 31, 62, 63}
	var buf bytes.Buffer
	e := newRangeEncoder(&buf)
	tc := newTreeCodec(bits)
	for _, s := range syms {
		if err := tc.Encode(e, s); err != nil {
			t.Fatalf("Encode: %s", err)
		}
	}
	if err := e.close(); err != nil {
		t.Fatalf("close: %s", err)
	}

	d, err := newRangeDecoder(&buf, false)
	if err != nil {
		t.Fatalf("newRangeDecoder: %s", err)
	}
	td := newTreeCodec(bits)
	for _, want := range syms {
		got, err := td.Decode(d)
		if err != nil {
			t.Fatalf("Decode: %s", err)
		}
		if got != want {
			t.Errorf("Decode got %d; want %d", got, want)
		}
	}
}

func TestTreeReverseCodecRoundTrip(t *testing.T) {
	const bits = 4
	syms := []uint32{0, 1, 5, 9, 15}
	var buf bytes.Buffer
	e := newRangeEncoder(&buf)
	tc := newTreeReverseCodec(bits)
	for _, s := range syms {
		if err := tc.Encode(e, s); err != nil {
			t.Fatalf("Encode: %s", err)
		}
	}
	if err := e.close(); err != nil {
		t.Fatalf("close: %s", err)
	}

	d, err := newRangeDecoder(&buf, false)
	if err != nil {
		t.Fatalf("newRangeDecoder: %s", err)
	}
	td := newTreeReverseCodec(bits)
	for _, want := range syms {
		got, err := td.Decode(d)
		if err != nil {
			t.Fatalf("Decode: %s", err)
		}
		if got != want {
			t.Errorf("Decode got %d; want %d", got, want)
		}
	}
}
