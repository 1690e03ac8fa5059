package lzma

import "math/bits"

const (
	minDistance = 1
	maxDistance = 1<<32 - 1

	lenStates = 4

	posSlotBits   = 6
	startPosModel = 4
	endPosModel   = 14
	alignBits     = 4

	numFullDistances = 1 << (endPosModel >> 1)
)

// distCodec implements the distance sub-model: a per-length-state 6-bit
// slot tree selects a magnitude bucket; buckets below endPosModel refine
// with a reverse tree over the modeled low bits, buckets at or above it
// refine with uniform direct bits plus a shared 4-bit align tree for the
// lowest bits.
type distCodec struct {
	posSlotCodecs [lenStates]*treeCodec
	posModel      [endPosModel - startPosModel]*treeReverseCodec
	alignCodec    *treeReverseCodec
}

func newDistCodec() *distCodec {
	dc := &distCodec{alignCodec: newTreeReverseCodec(alignBits)}
	for i := range dc.posSlotCodecs {
		dc.posSlotCodecs[i] = newTreeCodec(posSlotBits)
	}
	for i := range dc.posModel {
		slot := startPosModel + i
		footerBits := (slot >> 1) - 1
		dc.posModel[i] = newTreeReverseCodec(footerBits)
	}
	return dc
}

// distSlot returns the 6-bit slot for a zero-based distance dist.
func distSlot(dist uint32) uint32 {
	if dist < 4 {
		return dist
	}
	n := 31 - bits.LeadingZeros32(dist)
	return uint32(n)<<1 | (dist>>uint(n-1))&1
}

func (dc *distCodec) Encode(e *rangeEncoder, dist uint32, l uint32) error {
	slot := distSlot(dist)
	ls := lenState(l)
	if err := dc.posSlotCodecs[ls].Encode(e, slot); err != nil {
		return err
	}
	if slot < startPosModel {
		return nil
	}
	footerBits := int(slot>>1) - 1
	base := (2 | slot&1) << uint(footerBits)
	reduced := dist - base
	if slot < endPosModel {
		return dc.posModel[slot-startPosModel].Encode(e, reduced)
	}
	if err := e.encodeDirectBits(reduced>>alignBits, footerBits-alignBits); err != nil {
		return err
	}
	return dc.alignCodec.Encode(e, reduced&(1<<alignBits-1))
}

func (dc *distCodec) Decode(d *rangeDecoder, l uint32) (uint32, error) {
	ls := lenState(l)
	slot, err := dc.posSlotCodecs[ls].Decode(d)
	if err != nil {
		return 0, err
	}
	if slot < startPosModel {
		return slot, nil
	}
	footerBits := int(slot>>1) - 1
	base := (2 | slot&1) << uint(footerBits)
	if slot < endPosModel {
		reduced, err := dc.posModel[slot-startPosModel].Decode(d)
		if err != nil {
			return 0, err
		}
		return base + reduced, nil
	}
	hi, err := d.decodeDirectBits(footerBits - alignBits)
	if err != nil {
		return 0, err
	}
	lo, err := dc.alignCodec.Decode(d)
	if err != nil {
		return 0, err
	}
	return base + hi<<alignBits + lo, nil
}
