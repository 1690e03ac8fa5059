package lzma

// states is the number of FSM states tracking the kind of the last few
// emitted symbols (literal vs match vs rep vs short-rep), used to select
// which isMatch/isRep/literal sub-model applies next. The transition table
// below is lzip's State class (original_source/lzip.h) transcribed
// directly: each method returns the next state given the current one.
const states = 12

const (
	maxPosBits   = 2 // pos_state_bits: low bits of the stream position select a sub-model column
	posStateMask = 1<<maxPosBits - 1
)

// nextStateLiteral is lzip.h State::next[] applied by set_char().
var nextStateLiteral = [states]uint32{0, 0, 0, 0, 1, 2, 3, 4, 5, 6, 4, 5}

func updateStateLiteral(st uint32) uint32 { return nextStateLiteral[st] }

// updateStateMatch follows set_match(): any state collapses to 7 (or 10 if
// already past the rep-heavy states), marking "last symbol was a match".
func updateStateMatch(st uint32) uint32 {
	if st < 7 {
		return 7
	}
	return 10
}

// updateStateRep follows set_rep().
func updateStateRep(st uint32) uint32 {
	if st < 7 {
		return 8
	}
	return 11
}

// updateStateShortRep follows set_short_rep().
func updateStateShortRep(st uint32) uint32 {
	if st < 7 {
		return 9
	}
	return 11
}

// isLiteralState reports whether the FSM state indicates the previous
// symbol was a literal (states 0-6), which gates whether a following
// literal uses the plain or matched-literal coding path.
func isLiteralState(st uint32) bool {
	return st < 7
}

// state bundles every probability sub-model used by one LZMA stream: the
// FSM's own current value plus the full set of adaptive cells it indexes
// into. Layout mirrors the teacher's `state` struct in lzma/state.go,
// generalized to lzip's fixed lc=3/lp=0/pb=2 configuration.
type state struct {
	st uint32

	isMatch     [states << maxPosBits]prob
	isRep       [states]prob
	isRepG0     [states]prob
	isRepG1     [states]prob
	isRepG2     [states]prob
	isRepG0Long [states << maxPosBits]prob

	litCodec    *literalCodec
	lenCodec    *lengthCodec
	repLenCodec *lengthCodec
	distCodec   *distCodec

	rep [4]uint32
}

func newState() *state {
	s := &state{
		litCodec:    newLiteralCodec(),
		lenCodec:    newLengthCodec(),
		repLenCodec: newLengthCodec(),
		distCodec:   newDistCodec(),
	}
	for i := range s.isMatch {
		s.isMatch[i] = newProb()
	}
	for i := range s.isRep {
		s.isRep[i] = newProb()
		s.isRepG0[i] = newProb()
		s.isRepG1[i] = newProb()
		s.isRepG2[i] = newProb()
	}
	for i := range s.isRepG0Long {
		s.isRepG0Long[i] = newProb()
	}
	return s
}

func posState(streamPos int64) uint32 {
	return uint32(streamPos) & posStateMask
}
