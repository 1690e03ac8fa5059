package lzma

// symbolWriter emits LZMA symbols (literal, match, rep-match, short-rep,
// end marker) against a shared state/rangeEncoder pair. Both the fast and
// normal encoders drive it identically; only their match-selection
// strategy differs. Grounded on the teacher's lzma/encoder.go
// writeLiteral/writeMatch shape, generalized off lz.Window onto a plain
// []byte input buffer.
type symbolWriter struct {
	e    *rangeEncoder
	st   *state
	data []byte
	pos  int
}

func newSymbolWriter(e *rangeEncoder, data []byte) *symbolWriter {
	return &symbolWriter{e: e, st: newState(), data: data}
}

func (w *symbolWriter) prevByte() byte {
	if w.pos == 0 {
		return 0
	}
	return w.data[w.pos-1]
}

func (w *symbolWriter) writeLiteral() error {
	ps := posState(int64(w.pos))
	idx := w.st.st<<maxPosBits | ps
	if err := w.e.encodeBit(&w.st.isMatch[idx], 0); err != nil {
		return err
	}
	b := w.data[w.pos]
	prev := w.prevByte()
	var err error
	if isLiteralState(w.st.st) {
		err = w.st.litCodec.EncodeLiteral(w.e, prev, b)
	} else {
		mp := w.pos - int(w.st.rep[0]) - 1
		matchByte := byte(0)
		if mp >= 0 {
			matchByte = w.data[mp]
		}
		err = w.st.litCodec.EncodeMatched(w.e, prev, matchByte, b)
	}
	if err != nil {
		return err
	}
	w.st.st = updateStateLiteral(w.st.st)
	w.pos++
	return nil
}

// writeMatch emits a fresh-distance match of the given zero-based distance
// and length, updating the rep-distance cache and FSM state.
func (w *symbolWriter) writeMatch(dist uint32, length int) error {
	ps := posState(int64(w.pos))
	idx := w.st.st<<maxPosBits | ps
	if err := w.e.encodeBit(&w.st.isMatch[idx], 1); err != nil {
		return err
	}
	if err := w.e.encodeBit(&w.st.isRep[w.st.st], 0); err != nil {
		return err
	}
	if err := w.st.lenCodec.Encode(w.e, uint32(length), ps); err != nil {
		return err
	}
	if err := w.st.distCodec.Encode(w.e, dist, uint32(length)); err != nil {
		return err
	}
	w.st.rep[3], w.st.rep[2], w.st.rep[1], w.st.rep[0] = w.st.rep[2], w.st.rep[1], w.st.rep[0], dist
	w.st.st = updateStateMatch(w.st.st)
	w.pos += length
	return nil
}

// repIndex returns the index (0-3) of dist within the rep cache, or -1.
func (w *symbolWriter) repIndex(dist uint32) int {
	for i, r := range w.st.rep {
		if r == dist {
			return i
		}
	}
	return -1
}

// writeRep emits a repeat-distance match using rep cache slot idx
// (0=rep0..3=rep3), promoting it to rep0 as lzip's decoder expects.
func (w *symbolWriter) writeRep(idx int, length int) error {
	ps := posState(int64(w.pos))
	miIdx := w.st.st<<maxPosBits | ps
	if err := w.e.encodeBit(&w.st.isMatch[miIdx], 1); err != nil {
		return err
	}
	if err := w.e.encodeBit(&w.st.isRep[w.st.st], 1); err != nil {
		return err
	}
	dist := w.st.rep[idx]
	switch idx {
	case 0:
		if err := w.e.encodeBit(&w.st.isRepG0[w.st.st], 0); err != nil {
			return err
		}
		longIdx := w.st.st<<maxPosBits | ps
		if err := w.e.encodeBit(&w.st.isRepG0Long[longIdx], 1); err != nil {
			return err
		}
	case 1:
		if err := w.e.encodeBit(&w.st.isRepG0[w.st.st], 1); err != nil {
			return err
		}
		if err := w.e.encodeBit(&w.st.isRepG1[w.st.st], 0); err != nil {
			return err
		}
		w.st.rep[1] = w.st.rep[0]
	case 2:
		if err := w.e.encodeBit(&w.st.isRepG0[w.st.st], 1); err != nil {
			return err
		}
		if err := w.e.encodeBit(&w.st.isRepG1[w.st.st], 1); err != nil {
			return err
		}
		if err := w.e.encodeBit(&w.st.isRepG2[w.st.st], 0); err != nil {
			return err
		}
		w.st.rep[2] = w.st.rep[1]
		w.st.rep[1] = w.st.rep[0]
	case 3:
		if err := w.e.encodeBit(&w.st.isRepG0[w.st.st], 1); err != nil {
			return err
		}
		if err := w.e.encodeBit(&w.st.isRepG1[w.st.st], 1); err != nil {
			return err
		}
		if err := w.e.encodeBit(&w.st.isRepG2[w.st.st], 1); err != nil {
			return err
		}
		w.st.rep[3] = w.st.rep[2]
		w.st.rep[2] = w.st.rep[1]
		w.st.rep[1] = w.st.rep[0]
	}
	w.st.rep[0] = dist
	if err := w.st.repLenCodec.Encode(w.e, uint32(length), ps); err != nil {
		return err
	}
	w.st.st = updateStateRep(w.st.st)
	w.pos += length
	return nil
}

// writeShortRep emits a single-byte repeat of rep0.
func (w *symbolWriter) writeShortRep() error {
	ps := posState(int64(w.pos))
	miIdx := w.st.st<<maxPosBits | ps
	if err := w.e.encodeBit(&w.st.isMatch[miIdx], 1); err != nil {
		return err
	}
	if err := w.e.encodeBit(&w.st.isRep[w.st.st], 1); err != nil {
		return err
	}
	if err := w.e.encodeBit(&w.st.isRepG0[w.st.st], 0); err != nil {
		return err
	}
	longIdx := w.st.st<<maxPosBits | ps
	if err := w.e.encodeBit(&w.st.isRepG0Long[longIdx], 0); err != nil {
		return err
	}
	w.st.st = updateStateShortRep(w.st.st)
	w.pos++
	return nil
}

// writeEOS emits the end-of-stream marker: a fresh match with distance
// 0xFFFFFFFF and length minMatchLen.
func (w *symbolWriter) writeEOS() error {
	ps := posState(int64(w.pos))
	idx := w.st.st<<maxPosBits | ps
	if err := w.e.encodeBit(&w.st.isMatch[idx], 1); err != nil {
		return err
	}
	if err := w.e.encodeBit(&w.st.isRep[w.st.st], 0); err != nil {
		return err
	}
	if err := w.st.lenCodec.Encode(w.e, minMatchLen, ps); err != nil {
		return err
	}
	return w.st.distCodec.Encode(w.e, eosDist, minMatchLen)
}
