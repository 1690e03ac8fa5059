package lzma

// Dictionary size bounds, named exactly as original_source/lzip.h's
// min_dictionary_bits/max_dictionary_bits constants.
const (
	minDictionaryBits = 12
	maxDictionaryBits = 29

	minDictSize = 1 << minDictionaryBits
	maxDictSize = 1 << maxDictionaryBits
)

// Properties describes the fixed LZMA sub-model configuration lzip uses
// for every member: literal context bits, position bits, and the chosen
// dictionary size. Unlike classic standalone LZMA, lc/lp/pb are not
// per-stream choices in lzip — they are fixed by the format — but the
// type is kept (mirroring the teacher's own lzma.Properties) so the codec
// layer doesn't hard-code magic numbers inline.
type Properties struct {
	LC, LP, PB int
	DictSize   uint32
}

// DefaultProperties is the only configuration lzip's container format
// permits: lc=3, lp=0, pb=2 (original_source/lzip.h's literal_context_bits
// and pos_state_bits).
func DefaultProperties(dictSize uint32) Properties {
	return Properties{LC: 3, LP: 0, PB: 2, DictSize: dictSize}
}

func (p Properties) Validate() error {
	if p.LC != 3 || p.LP != 0 || p.PB != 2 {
		return newError("lzip requires lc=3, lp=0, pb=2")
	}
	if p.DictSize < minDictSize || p.DictSize > maxDictSize {
		return newError("dictionary size out of range")
	}
	return nil
}

// MatchLenLimit bounds how long a match the encoder will bother searching
// for beyond the cheapest case; it is an encoder-only tuning knob with no
// effect on the bitstream format, named to match lzip's -m option.
type MatchLenLimit int

const (
	MinMatchLenLimit MatchLenLimit = minMatchLen
	MaxMatchLenLimit MatchLenLimit = maxMatchLen
)

// Level bundles the dictionary size and match-length-limit presets for
// lzip's -0..-9 compression levels (original_source/main.cc's level table).
type Level struct {
	DictSize      uint32
	MatchLenLimit int
}

var levels = [10]Level{
	0: {DictSize: 1 << 16, MatchLenLimit: 16},
	1: {DictSize: 1 << 20, MatchLenLimit: 5},
	2: {DictSize: 3 << 19, MatchLenLimit: 6},
	3: {DictSize: 1 << 21, MatchLenLimit: 8},
	4: {DictSize: 3 << 20, MatchLenLimit: 12},
	5: {DictSize: 1 << 22, MatchLenLimit: 20},
	6: {DictSize: 1 << 23, MatchLenLimit: 36},
	7: {DictSize: 1 << 24, MatchLenLimit: 68},
	8: {DictSize: 3 << 23, MatchLenLimit: 132},
	9: {DictSize: 1 << 25, MatchLenLimit: 273},
}

// LevelPreset returns the dictionary size / match-length-limit pair for
// compression level n (0-9), clamping out-of-range inputs.
func LevelPreset(n int) Level {
	if n < 0 {
		n = 0
	}
	if n > 9 {
		n = 9
	}
	return levels[n]
}
