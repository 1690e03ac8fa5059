package lzma

import "math"

// probPrices is a table of approximate bit-costs (in 1/16th-of-a-bit
// units) for encoding a single bit under a probability cell whose value is
// the table index's implied probability — the same kNumBitPriceShiftBits
// convention visible in _examples/other_examples' lzma encoder snippets
// (fillDistancesPrices/fillAlignPrices), built once at init time so the
// per-symbol price lookups used while parsing stay table lookups rather
// than repeated log2 calls.
var probPrices [probTotal >> priceShift]uint32

const priceShift = 4

func init() {
	for i := range probPrices {
		p := float64(i<<priceShift) + (1 << (priceShift - 1))
		probPrices[i] = uint32(-math.Log2(p/probTotal) * (1 << priceShift))
	}
}

// priceOf0 returns the cost, in 1/16-bit units, of encoding a 0 bit under
// probability cell p.
func priceOf0(p prob) uint32 {
	return probPrices[p>>priceShift]
}

// priceOf1 returns the cost of encoding a 1 bit under probability cell p.
func priceOf1(p prob) uint32 {
	return probPrices[(probTotal-prob(p))>>priceShift]
}

func priceOfBit(p prob, bit uint32) uint32 {
	if bit == 0 {
		return priceOf0(p)
	}
	return priceOf1(p)
}

// treePrice returns the cost of encoding sym through a bits-wide tree
// whose cells are currently at the given probabilities, without mutating
// them — used to compare candidate parses before committing one.
func treePrice(probs []prob, bits int, sym uint32) uint32 {
	m := uint32(1)
	var price uint32
	for i := bits - 1; i >= 0; i-- {
		bit := (sym >> uint(i)) & 1
		price += priceOfBit(probs[m], bit)
		m = m<<1 | bit
	}
	return price
}

func treeReversePrice(probs []prob, bits int, sym uint32) uint32 {
	m := uint32(1)
	var price uint32
	for i := 0; i < bits; i++ {
		bit := sym & 1
		sym >>= 1
		price += priceOfBit(probs[m], bit)
		m = m<<1 | bit
	}
	return price
}
