package lzma

import (
	"bytes"
	"testing"
)

func TestDirectBitsRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 2, 0xFF, 0x1234, 0xFFFFFFFF}
	var buf bytes.Buffer
	e := newRangeEncoder(&buf)
	for _, v := range values {
		if err := e.encodeDirectBits(v, 32); err != nil {
			t.Fatalf("encodeDirectBits: %s", err)
		}
	}
	if err := e.close(); err != nil {
		t.Fatalf("close: %s", err)
	}

	d, err := newRangeDecoder(&buf, false)
	if err != nil {
		t.Fatalf("newRangeDecoder: %s", err)
	}
	for _, want := range values {
		got, err := d.decodeDirectBits(32)
		if err != nil {
			t.Fatalf("decodeDirectBits: %s", err)
		}
		if got != want {
			t.Errorf("decodeDirectBits got %#x; want %#x", got, want)
		}
	}
}

func TestProbBitRoundTrip(t *testing.T) {
	bits := []uint32{0, 0, 1, 1, 0, 1, 1, 1, 0, 0, 1, 0}
	var buf bytes.Buffer
	e := newRangeEncoder(&buf)
	p := newProb()
	for _, b := range bits {
		if err := e.encodeBit(&p, b); err != nil {
			t.Fatalf("encodeBit: %s", err)
		}
	}
	if err := e.close(); err != nil {
		t.Fatalf("close: %s", err)
	}

	d, err := newRangeDecoder(&buf, false)
	if err != nil {
		t.Fatalf("newRangeDecoder: %s", err)
	}
	q := newProb()
	for i, want := range bits {
		got, err := d.decodeBit(&q)
		if err != nil {
			t.Fatalf("decodeBit: %s", err)
		}
		if got != want {
			t.Errorf("bit %d: got %d; want %d", i, got, want)
		}
	}
}

func TestNewRangeDecoderRejectsBadPreamble(t *testing.T) {
	buf := bytes.NewBuffer([]byte{1, 0, 0, 0, 0})
	if _, err := newRangeDecoder(buf, false); err == nil {
		t.Fatal("newRangeDecoder accepted a nonzero first byte")
	}
}
