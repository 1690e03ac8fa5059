// Package lzma implements the LZMA range-coded bitstream lzip wraps in its
// member container: the probability models, range coder, match finder and
// both encoder variants (fast/greedy and normal/price-based), plus the
// decode loop that inverts them.
package lzma

import "io"

// memberEncoder is the shared interface fastEncoder and normalEncoder
// implement, letting the caller pick a compression strategy without the
// rest of the pipeline caring which one it got — the same "variant with a
// shared operation set" shape the design notes call for.
type memberEncoder interface {
	Encode() error
}

// Encoder drives one LZMA stream (one lzip member's payload) to
// completion: symbol selection through a memberEncoder, range coding
// through rangeEncoder.
type Encoder struct {
	rc *rangeEncoder
	me memberEncoder
}

// NewEncoder builds an encoder for the given input, writing range-coded
// output to w. matchLenLimit bounds how hard the match finder searches
// (lzip's -m option / the level presets in params.go); fast selects the
// greedy/lazy strategy used by low compression levels.
func NewEncoder(w io.ByteWriter, data []byte, matchLenLimit int, fast bool) *Encoder {
	rc := newRangeEncoder(w)
	var me memberEncoder
	if fast {
		me = newFastEncoder(rc, data, matchLenLimit)
	} else {
		me = newNormalEncoder(rc, data, matchLenLimit)
	}
	return &Encoder{rc: rc, me: me}
}

// Encode runs the full encode pass and flushes the range coder's trailing
// bytes. After this returns, w has received the complete LZMA stream for
// one member.
func (enc *Encoder) Encode() error {
	if err := enc.me.Encode(); err != nil {
		return err
	}
	return enc.rc.close()
}
