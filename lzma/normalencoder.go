package lzma

// normalEncoder implements lzip's higher compression levels: at each
// position it compares the price (in probPrices units) of the best fresh
// match, the best rep-distance match, and a plain literal, over a short
// lookahead, and commits whichever is cheapest per byte covered. This is a
// deliberately small dynamic-programming step rather than the teacher's
// full lz.Window-backed optimal parser (that package's source isn't part
// of the retrieved pack — see DESIGN.md), but follows the same
// cost-comparison shape as lzma/writer.go's bestMatch/findOp.
type normalEncoder struct {
	sw       *symbolWriter
	mf       *hashChain
	matchLen int
}

func newNormalEncoder(e *rangeEncoder, data []byte, matchLenLimit int) *normalEncoder {
	return &normalEncoder{
		sw:       newSymbolWriter(e, data),
		mf:       newHashChain(data, 96),
		matchLen: matchLenLimit,
	}
}

// literalPrice estimates the cost of coding data[pos] as a literal.
func (n *normalEncoder) literalPrice(pos int) uint32 {
	st := n.sw.st
	ps := posState(int64(pos))
	idx := st.st<<maxPosBits | ps
	price := priceOf0(st.isMatch[idx])
	b := n.sw.data[pos]
	prev := byte(0)
	if pos > 0 {
		prev = n.sw.data[pos-1]
	}
	probs := st.litCodec.probSlice(prev)
	if isLiteralState(st.st) {
		m := uint32(1)
		for i := 7; i >= 0; i-- {
			bit := uint32(b>>uint(i)) & 1
			price += priceOfBit(probs[m], bit)
			m = m<<1 | bit
		}
	} else {
		// matched-literal path is cheaper to just flat-rate estimate:
		// the divergence point is data-dependent and not worth a full
		// simulation inside the parser's inner loop.
		price += 8 * (1 << priceShift)
	}
	return price
}

// matchPrice estimates the cost of a fresh-distance match symbol, pricing
// both the length sub-model's low range and the full distance sub-model
// (slot, then whichever of the reverse-tree or direct+align refinement the
// slot implies), the same breakdown distCodec.Encode itself walks.
func (n *normalEncoder) matchPrice(pos int, dist uint32, length int) uint32 {
	st := n.sw.st
	ps := posState(int64(pos))
	idx := st.st<<maxPosBits | ps
	price := priceOf1(st.isMatch[idx]) + priceOf0(st.isRep[st.st])
	price += treePrice(st.lenCodec.low[ps].probs, lenLowBits, minUint32(uint32(length)-minMatchLen, lenLowSymbols-1))

	ls := lenState(uint32(length))
	slot := distSlot(dist)
	price += treePrice(st.distCodec.posSlotCodecs[ls].probs, posSlotBits, slot)
	if slot >= startPosModel {
		footerBits := int(slot>>1) - 1
		base := (2 | slot&1) << uint(footerBits)
		reduced := dist - base
		if slot < endPosModel {
			price += treeReversePrice(st.distCodec.posModel[slot-startPosModel].probs, footerBits, reduced)
		} else {
			price += uint32(footerBits-alignBits) << priceShift
			price += treeReversePrice(st.distCodec.alignCodec.probs, alignBits, reduced&(1<<alignBits-1))
		}
	}
	return price
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// repPrice estimates the cost of a rep-distance match symbol in slot idx.
func (n *normalEncoder) repPrice(pos int, idx int, length int) uint32 {
	st := n.sw.st
	ps := posState(int64(pos))
	miIdx := st.st<<maxPosBits | ps
	price := priceOf1(st.isMatch[miIdx]) + priceOf1(st.isRep[st.st])
	switch idx {
	case 0:
		price += priceOf0(st.isRepG0[st.st])
	case 1:
		price += priceOf1(st.isRepG0[st.st]) + priceOf0(st.isRepG1[st.st])
	case 2:
		price += priceOf1(st.isRepG0[st.st]) + priceOf1(st.isRepG1[st.st]) + priceOf0(st.isRepG2[st.st])
	default:
		price += priceOf1(st.isRepG0[st.st]) + priceOf1(st.isRepG1[st.st]) + priceOf1(st.isRepG2[st.st])
	}
	return price
}

// choice is one candidate symbol the parser weighs at a position: a plain
// literal has no choice value at all, everything else is either a
// fresh-distance match or a rep-distance match of some length.
type choice struct {
	isRep  bool
	repIdx int
	dist   uint32
	length int
	price  uint32
}

func (c choice) costPerByte() float64 { return float64(c.price) / float64(c.length) }

// bestCandidateAt evaluates every match/rep candidate the hash chain (plus
// a direct rep0 probe) surfaces at pos and returns the cheapest
// per-byte-covered one, or nil if none reach minMatchLen. It only reads
// the match finder's tables, so it is safe to call speculatively on a
// position not yet committed to (the one-position lazy lookahead in
// Encode relies on this).
func (n *normalEncoder) bestCandidateAt(pos int) *choice {
	cands := n.mf.findMatches(pos, n.matchLen)
	var best *choice

	consider := func(c choice) {
		if c.isRep {
			c.price = n.repPrice(pos, c.repIdx, c.length)
		} else {
			c.price = n.matchPrice(pos, c.dist, c.length)
		}
		if best == nil || c.costPerByte() < best.costPerByte() {
			cc := c
			best = &cc
		}
	}

	for _, cand := range cands {
		if cand.length < minMatchLen {
			continue
		}
		if idx := n.sw.repIndex(cand.dist); idx >= 0 {
			consider(choice{isRep: true, repIdx: idx, length: cand.length})
		} else {
			consider(choice{dist: cand.dist, length: cand.length})
		}
	}
	// Always also weigh using rep0 directly even when the hash chain
	// didn't happen to surface it, since repeats are common and cheap
	// to check explicitly.
	if rep0Len := n.repMatchLenAt(pos, 0); rep0Len >= minMatchLen {
		consider(choice{isRep: true, repIdx: 0, length: rep0Len})
	}
	return best
}

// Encode walks the input choosing, at each position, the cheapest-per-byte
// option among a plain literal and the best match/rep candidate
// bestCandidateAt finds, with a one-position price-based lazy lookahead:
// before committing to a match, it checks whether emitting a single
// literal and taking the best candidate at the next position instead
// covers those same bytes more cheaply overall, the price-driven
// counterpart of the greedy/lazy choice fastEncoder makes by raw length.
func (n *normalEncoder) Encode() error {
	data := n.sw.data
	total := len(data)
	for n.sw.pos < total {
		pos := n.sw.pos
		n.mf.insert(pos)

		best := n.bestCandidateAt(pos)
		litPrice := n.literalPrice(pos)
		useLiteral := best == nil || float64(litPrice) < best.costPerByte()

		if !useLiteral && pos+1 < total {
			if next := n.bestCandidateAt(pos + 1); next != nil {
				deferredPrice := float64(litPrice) + float64(next.price)
				deferredLen := float64(1 + next.length)
				if deferredPrice/deferredLen < best.costPerByte() {
					useLiteral = true
				}
			}
		}

		if useLiteral {
			if err := n.sw.writeLiteral(); err != nil {
				return err
			}
			continue
		}

		var err error
		if best.isRep {
			err = n.sw.writeRep(best.repIdx, best.length)
		} else {
			err = n.sw.writeMatch(best.dist, best.length)
		}
		if err != nil {
			return err
		}
		for p := pos + 1; p < n.sw.pos && p < total; p++ {
			n.mf.insert(p)
		}
	}
	return n.sw.writeEOS()
}

// repMatchLenAt measures how far data at pos matches the byte sequence at
// the given rep-cache distance, for direct rep0 consideration.
func (n *normalEncoder) repMatchLenAt(pos int, repSlot int) int {
	dist := n.sw.st.rep[repSlot]
	src := pos - int(dist) - 1
	if src < 0 {
		return 0
	}
	limit := len(n.sw.data) - pos
	if limit > n.matchLen {
		limit = n.matchLen
	}
	return matchLen(n.sw.data, src, pos, limit)
}
