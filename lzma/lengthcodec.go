package lzma

const (
	lenLowBits  = 3
	lenMidBits  = 3
	lenHighBits = 8

	lenLowSymbols  = 1 << lenLowBits
	lenMidSymbols  = 1 << lenMidBits
	lenHighSymbols = 1 << lenHighBits

	// minMatchLen is the shortest length a match/rep-match symbol can
	// encode; shorter runs are always emitted as literals or short reps.
	minMatchLen = 2
	// maxMatchLen is the longest length a single length symbol can
	// encode (minMatchLen + all three sub-model ranges - 1).
	maxMatchLen = minMatchLen + lenLowSymbols + lenMidSymbols + lenHighSymbols - 1
)

// lengthCodec implements the length sub-model shared by match and
// rep-match symbols: a 2-bit choice selects among a low/mid/high range,
// each coded with its own position-state-dependent (low/mid) or global
// (high) tree.
type lengthCodec struct {
	choice [2]prob
	low    [1 << maxPosBits]*treeCodec
	mid    [1 << maxPosBits]*treeCodec
	high   *treeCodec
}

func newLengthCodec() *lengthCodec {
	lc := &lengthCodec{
		choice: [2]prob{newProb(), newProb()},
		high:   newTreeCodec(lenHighBits),
	}
	for i := range lc.low {
		lc.low[i] = newTreeCodec(lenLowBits)
		lc.mid[i] = newTreeCodec(lenMidBits)
	}
	return lc
}

func (lc *lengthCodec) Encode(e *rangeEncoder, l uint32, posState uint32) error {
	l -= minMatchLen
	if l < lenLowSymbols {
		if err := e.encodeBit(&lc.choice[0], 0); err != nil {
			return err
		}
		return lc.low[posState].Encode(e, l)
	}
	if err := e.encodeBit(&lc.choice[0], 1); err != nil {
		return err
	}
	l -= lenLowSymbols
	if l < lenMidSymbols {
		if err := e.encodeBit(&lc.choice[1], 0); err != nil {
			return err
		}
		return lc.mid[posState].Encode(e, l)
	}
	if err := e.encodeBit(&lc.choice[1], 1); err != nil {
		return err
	}
	l -= lenMidSymbols
	return lc.high.Encode(e, l)
}

func (lc *lengthCodec) Decode(d *rangeDecoder, posState uint32) (uint32, error) {
	bit, err := d.decodeBit(&lc.choice[0])
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		l, err := lc.low[posState].Decode(d)
		if err != nil {
			return 0, err
		}
		return l + minMatchLen, nil
	}
	bit, err = d.decodeBit(&lc.choice[1])
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		l, err := lc.mid[posState].Decode(d)
		if err != nil {
			return 0, err
		}
		return l + lenLowSymbols + minMatchLen, nil
	}
	l, err := lc.high.Decode(d)
	if err != nil {
		return 0, err
	}
	return l + lenLowSymbols + lenMidSymbols + minMatchLen, nil
}

// lenState maps a match length to one of lenStates length-state buckets
// used to select the distance slot model, per lzip.h's get_len_state.
func lenState(l uint32) uint32 {
	l -= minMatchLen
	if l >= lenStates {
		return lenStates - 1
	}
	return l
}
