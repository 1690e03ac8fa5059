package lzip

import "math/bits"

// headerSize is the fixed 6-byte lzip member header: 4 magic bytes, 1
// version byte, 1 coded-dictionary-size byte.
const headerSize = 6

var magic = [4]byte{'L', 'Z', 'I', 'P'}

const formatVersion = 1

// header is the in-memory form of a member's 6-byte header, grounded
// bit-for-bit on original_source/lzip.h's Lzip_header.
type header struct {
	version  byte
	dictSize uint32
}

func (h header) encode() [headerSize]byte {
	var b [headerSize]byte
	copy(b[:4], magic[:])
	b[4] = h.version
	b[5] = encodeDictSize(h.dictSize)
	return b
}

func decodeHeader(b [headerSize]byte) (header, error) {
	if b[0] != magic[0] || b[1] != magic[1] || b[2] != magic[2] || b[3] != magic[3] {
		return header{}, newFormatError("bad magic bytes")
	}
	if b[4] != formatVersion {
		return header{}, newFormatError("unsupported format version")
	}
	ds := decodeDictSize(b[5])
	if !validDictSize(ds) {
		return header{}, newFormatError("invalid dictionary size")
	}
	return header{version: b[4], dictSize: ds}, nil
}

// checkPrefix reports whether the first sz bytes of b (sz may be < 4, for
// a header truncated mid-magic) match the lzip magic — used by the index
// scanner to recognize a truncated trailing header.
func checkPrefix(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	n := len(b)
	if n > 4 {
		n = 4
	}
	for i := 0; i < n; i++ {
		if b[i] != magic[i] {
			return false
		}
	}
	return true
}

// checkCorrupt reports whether b's first 4 bytes partially, but not fully
// or not-at-all, match the magic — a pattern real lzip data never
// produces by chance as often as corruption does.
func checkCorrupt(b [4]byte) bool {
	matches := 0
	for i := 0; i < 4; i++ {
		if b[i] == magic[i] {
			matches++
		}
	}
	return matches > 1 && matches < 4
}

func validDictSize(sz uint32) bool {
	return sz >= minDictSize && sz <= maxDictSize
}

// decodeDictSize inverts encodeDictSize: data[5]'s low 5 bits give an
// exponent, the upper 3 bits (when the base size exceeds the minimum) a
// fractional reduction in sixteenths.
func decodeDictSize(b byte) uint32 {
	sz := uint32(1) << (b & 0x1F)
	if sz > minDictSize {
		sz -= (sz / 16) * uint32((b>>5)&7)
	}
	return sz
}

// encodeDictSize picks the coded byte for the smallest representable
// dictionary size >= sz, matching Lzip_header::dictionary_size(sz).
func encodeDictSize(sz uint32) byte {
	if sz < minDictSize {
		sz = minDictSize
	}
	if sz > maxDictSize {
		sz = maxDictSize
	}
	exp := byte(bits.Len32(sz - 1))
	b := exp
	baseSize := uint32(1) << exp
	if baseSize > minDictSize {
		fraction := baseSize / 16
		for i := uint32(7); i >= 1; i-- {
			if baseSize-i*fraction >= sz {
				b |= byte(i << 5)
				break
			}
		}
	}
	return b
}
