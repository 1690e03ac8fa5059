package lzma

import "io"

// topValue is the normalization threshold: whenever nrange drops below it,
// the coder shifts out a byte and rescales.
const topValue = 1 << 24

// rangeEncoder implements carry-propagating range coding, the same shape as
// classic LZMA encoders: pending output is buffered in cache/cacheLen so a
// carry produced by a later ShiftLow can still ripple into bytes already
// "emitted".
type rangeEncoder struct {
	w        io.ByteWriter
	low      uint64
	cacheLen int
	nrange   uint32
	cache    byte
}

func newRangeEncoder(w io.ByteWriter) *rangeEncoder {
	return &rangeEncoder{
		w:        w,
		nrange:   0xFFFFFFFF,
		cacheLen: 1,
	}
}

func (e *rangeEncoder) shiftLow() error {
	if uint32(e.low>>32) != 0 || e.low < 0xFF000000 {
		temp := e.cache
		carry := byte(e.low >> 32)
		for {
			if err := e.w.WriteByte(temp + carry); err != nil {
				return err
			}
			temp = 0xFF
			e.cacheLen--
			if e.cacheLen == 0 {
				break
			}
		}
		e.cache = byte(e.low >> 24)
	}
	e.cacheLen++
	e.low = (e.low << 8) & 0xFFFFFFFF
	return nil
}

// encodeBit encodes a single bit under probability model p and updates p.
func (e *rangeEncoder) encodeBit(p *prob, bit uint32) error {
	bound := p.bound(e.nrange)
	if bit == 0 {
		e.nrange = bound
		p.inc()
	} else {
		e.low += uint64(bound)
		e.nrange -= bound
		p.dec()
	}
	for e.nrange < topValue {
		e.nrange <<= 8
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

// encodeDirectBits encodes count bits of v (MSB first) with uniform
// probability, used for the high-order distance bits beyond the modeled
// range.
func (e *rangeEncoder) encodeDirectBits(v uint32, count int) error {
	for i := count - 1; i >= 0; i-- {
		e.nrange >>= 1
		bit := (v >> uint(i)) & 1
		if bit != 0 {
			e.low += uint64(e.nrange)
		}
		for e.nrange < topValue {
			e.nrange <<= 8
			if err := e.shiftLow(); err != nil {
				return err
			}
		}
	}
	return nil
}

// close flushes the five bytes required to disambiguate the final low value.
func (e *rangeEncoder) close() error {
	for i := 0; i < 5; i++ {
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

// rangeDecoder mirrors rangeEncoder on the decode side.
type rangeDecoder struct {
	r      io.ByteReader
	nrange uint32
	code   uint32
}

// newRangeDecoder reads the 5-byte range-coder preamble: the first byte
// seeds no code bits itself (it exists only so the first shiftLow on the
// encode side has somewhere to go) and the remaining four seed the initial
// code value. A nonzero first byte ("marking byte") is lzip's own
// extension point; per original_source/lzip.h's ignore_marking(true)
// default, it is tolerated unless ignoreMarking is false.
func newRangeDecoder(r io.ByteReader, ignoreMarking bool) (*rangeDecoder, error) {
	d := &rangeDecoder{r: r, nrange: 0xFFFFFFFF}
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if b != 0 && !ignoreMarking {
		return nil, newError("invalid range coder preamble byte")
	}
	for i := 0; i < 4; i++ {
		if err := d.updateCode(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *rangeDecoder) updateCode() error {
	b, err := d.r.ReadByte()
	if err != nil {
		return err
	}
	d.code = d.code<<8 | uint32(b)
	return nil
}

func (d *rangeDecoder) normalize() error {
	for d.nrange < topValue {
		d.nrange <<= 8
		if err := d.updateCode(); err != nil {
			return err
		}
	}
	return nil
}

// decodeBit decodes a single bit under probability model p and updates p.
func (d *rangeDecoder) decodeBit(p *prob) (uint32, error) {
	bound := p.bound(d.nrange)
	var bit uint32
	if d.code < bound {
		d.nrange = bound
		p.inc()
		bit = 0
	} else {
		d.code -= bound
		d.nrange -= bound
		p.dec()
		bit = 1
	}
	if err := d.normalize(); err != nil {
		return 0, err
	}
	return bit, nil
}

// decodeDirectBits decodes count uniformly-coded bits, MSB first.
func (d *rangeDecoder) decodeDirectBits(count int) (uint32, error) {
	var v uint32
	for i := 0; i < count; i++ {
		d.nrange >>= 1
		d.code -= d.nrange
		t := 0 - (d.code >> 31)
		d.code += d.nrange & t
		v = v<<1 | (t + 1)
		if err := d.normalize(); err != nil {
			return 0, err
		}
	}
	return v, nil
}

// isFinished reports whether the decoder has consumed its input such that
// all remaining code bits are derivable (used only for diagnostics).
func (d *rangeDecoder) isFinished() bool {
	return d.code == 0
}
