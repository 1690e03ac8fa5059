package lzma

import (
	"bytes"
	"testing"
)

func TestLengthCodecRoundTrip(t *testing.T) {
	lens := []uint32{minMatchLen, 3, 9, 10, 17, 18, maxMatchLen}
	var buf bytes.Buffer
	e := newRangeEncoder(&buf)
	lc := newLengthCodec()
	for i, l := range lens {
		if err := lc.Encode(e, l, uint32(i)%(1<<maxPosBits)); err != nil {
			t.Fatalf("Encode(%d): %s", l, err)
		}
	}
	if err := e.close(); err != nil {
		t.Fatalf("close: %s", err)
	}

	d, err := newRangeDecoder(&buf, false)
	if err != nil {
		t.Fatalf("newRangeDecoder: %s", err)
	}
	ld := newLengthCodec()
	for i, want := range lens {
		got, err := ld.Decode(d, uint32(i)%(1<<maxPosBits))
		if err != nil {
			t.Fatalf("Decode: %s", err)
		}
		if got != want {
			t.Errorf("Decode got %d; want %d", got, want)
		}
	}
}

func TestLenState(t *testing.T) {
	tests := []struct {
		l    uint32
		want uint32
	}{
		{minMatchLen, 0},
		{minMatchLen + 1, 1},
		{minMatchLen + lenStates - 1, lenStates - 1},
		{maxMatchLen, lenStates - 1},
	}
	for _, tc := range tests {
		if got := lenState(tc.l); got != tc.want {
			t.Errorf("lenState(%d) = %d; want %d", tc.l, got, tc.want)
		}
	}
}
