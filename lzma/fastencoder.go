package lzma

// fastEncoder implements lzip's lower compression levels: greedy matching
// with a single byte of lazy lookahead (if the match one position ahead is
// longer, emit a literal now and take that match instead), grounded on the
// teacher's lzma/writer.go process/findOp loop.
type fastEncoder struct {
	sw       *symbolWriter
	mf       *hashChain
	matchLen int // match-length-limit preset, lzip's -m option
}

func newFastEncoder(e *rangeEncoder, data []byte, matchLenLimit int) *fastEncoder {
	return &fastEncoder{
		sw:       newSymbolWriter(e, data),
		mf:       newHashChain(data, 32),
		matchLen: matchLenLimit,
	}
}

func (f *fastEncoder) bestMatch(pos int) (dist uint32, length int, ok bool) {
	cands := f.mf.findMatches(pos, f.matchLen)
	if len(cands) == 0 {
		return 0, 0, false
	}
	best := cands[len(cands)-1]
	return best.dist, best.length, true
}

// Encode runs the greedy/lazy loop over the whole input buffer, emitting
// symbols via the shared symbolWriter, and finishes with the end marker.
func (f *fastEncoder) Encode() error {
	data := f.sw.data
	n := len(data)
	lookedAhead := false // true once pos+1 has already been inserted into the chain
	for f.sw.pos < n {
		pos := f.sw.pos
		if !lookedAhead {
			f.mf.insert(pos)
		}
		lookedAhead = false

		dist, length, ok := f.bestMatch(pos)
		if ok && length >= minMatchLen {
			if pos+1 < n {
				f.mf.insert(pos + 1)
				lookedAhead = true
				_, length2, ok2 := f.bestMatch(pos + 1)
				if ok2 && length2 > length {
					if err := f.sw.writeLiteral(); err != nil {
						return err
					}
					continue
				}
			}

			if idx := f.sw.repIndex(dist); idx >= 0 {
				if err := f.sw.writeRep(idx, length); err != nil {
					return err
				}
			} else if err := f.sw.writeMatch(dist, length); err != nil {
				return err
			}

			start := pos + 1
			if lookedAhead {
				start = pos + 2
			}
			for p := start; p < f.sw.pos && p < n; p++ {
				f.mf.insert(p)
			}
			lookedAhead = false
			continue
		}

		if err := f.sw.writeLiteral(); err != nil {
			return err
		}
	}
	return f.sw.writeEOS()
}
