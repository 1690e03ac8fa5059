package lzip

import "github.com/ulikunitz/lzip/lzma"

// Dictionary size bounds, named exactly as original_source/lzip.h's
// min_dictionary_bits/max_dictionary_bits.
const (
	minDictSize = 1 << 12
	maxDictSize = 1 << 29

	// minMemberSize is the smallest a well-formed member can be: a
	// header, a trailer, and the shortest possible LZMA stream (the
	// end-of-stream marker plus the range coder's flush bytes, 10 bytes)
	// (original_source/lzip.h's min_member_size).
	minMemberSize = 36

	// maxMemberSize bounds a single member so 64-bit size fields never
	// overflow int64 arithmetic in this package; lzip itself allows
	// members up to 2^63-1 bytes but the CLI's -b option rarely
	// approaches that.
	maxMemberSize = 1<<63 - 1
)

// Options bundles the driver-level configuration that spans an entire
// lzip stream (as opposed to lzma.Properties, which is per-member): the
// chosen compression level or explicit overrides, member/volume size
// caps, and the trailing-data tolerance policy. Mirrors the way the
// teacher's WriterConfig/ReaderConfig bundle a whole stream's settings;
// lzip has only one payload filter so a flat struct replaces xz's
// slice-of-filters model.
type Options struct {
	// Level selects one of the -0..-9 presets (lzma.LevelPreset). A
	// nonzero DictSize or MatchLenLimit replaces only the corresponding
	// preset value; the preset still supplies the other one.
	Level int

	DictSize      uint32
	MatchLenLimit int

	// MemberSize caps the uncompressed size placed in a single member
	// before the writer starts a new one (lzip's -b option). Zero means
	// unbounded (one member per Write-session, subject to Close).
	MemberSize uint64

	// IgnoreTrailing, when false, makes Reader report trailing garbage
	// after the last recognizable member as an error instead of
	// silently ignoring it (original_source/lzip.h's Cl_options).
	IgnoreTrailing bool

	// IgnoreEmpty, when false, makes a zero-data_size member (an empty
	// member) a FormatError instead of a tolerated, trivially-decoded
	// one (lzip's --empty-error).
	IgnoreEmpty bool

	// IgnoreMarking, when false, makes a nonzero first LZMA stream byte
	// ("marking" byte) a FormatError instead of a tolerated one (lzip's
	// --marking-error). lzip.h's Cl_options defaults this true.
	IgnoreMarking bool

	// LooseTrailing, when true, tolerates trailing bytes that merely
	// pattern-match a corrupt header (two or three magic bytes) instead
	// of treating that as definitive evidence of a truncated or corrupt
	// final member (lzip's --loose-trailing). Defaults false.
	LooseTrailing bool
}

// resolved returns the concrete (dictSize, matchLenLimit, fast) triple
// this Options value implies.
func (o Options) resolved() (dictSize uint32, matchLenLimit int, fast bool) {
	level := lzma.LevelPreset(o.Level)
	dictSize = level.DictSize
	matchLenLimit = level.MatchLenLimit
	if o.DictSize != 0 {
		dictSize = o.DictSize
	}
	if o.MatchLenLimit != 0 {
		matchLenLimit = o.MatchLenLimit
	}
	fast = o.Level <= 2 && o.MatchLenLimit == 0
	return dictSize, matchLenLimit, fast
}

// DefaultOptions is lzip's default: level 6, unbounded member size,
// trailing data, empty members, and nonzero marking bytes all tolerated,
// loose trailing data not tolerated (original_source/lzip.h's Cl_options
// default constructor).
var DefaultOptions = Options{
	Level:          6,
	IgnoreTrailing: true,
	IgnoreEmpty:    true,
	IgnoreMarking:  true,
}
