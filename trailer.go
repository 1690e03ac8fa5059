package lzip

import "encoding/binary"

// trailerSize is the fixed 20-byte member trailer: 4-byte CRC, 8-byte
// uncompressed size, 8-byte member size, all little-endian.
const trailerSize = 20

// trailer is the in-memory form of a member's 20-byte trailer, grounded
// bit-for-bit on original_source/lzip.h's Lzip_trailer.
type trailer struct {
	crc        uint32
	dataSize   uint64
	memberSize uint64
}

func (t trailer) encode() [trailerSize]byte {
	var b [trailerSize]byte
	binary.LittleEndian.PutUint32(b[0:4], t.crc)
	binary.LittleEndian.PutUint64(b[4:12], t.dataSize)
	binary.LittleEndian.PutUint64(b[12:20], t.memberSize)
	return b
}

func decodeTrailer(b [trailerSize]byte) trailer {
	return trailer{
		crc:        binary.LittleEndian.Uint32(b[0:4]),
		dataSize:   binary.LittleEndian.Uint64(b[4:12]),
		memberSize: binary.LittleEndian.Uint64(b[12:20]),
	}
}

// checkConsistency implements Lzip_trailer::check_consistency: the four
// structural invariants a trailer must satisfy regardless of whether the
// member's CRC actually matches its data (those two concerns are checked
// separately, since this one only needs the trailer's own bytes).
func (t trailer) checkConsistency() bool {
	if (t.crc == 0) != (t.dataSize == 0) {
		return false
	}
	if t.memberSize < minMemberSize {
		return false
	}
	// mlimit: the compressed size can never be large enough to exceed
	// roughly 9/8 of the uncompressed size plus the header/trailer
	// overhead (LZMA's worst-case literal-only expansion).
	mlimit := (9*t.dataSize+7)/8 + minMemberSize
	if t.memberSize > mlimit {
		return false
	}
	// dlimit: nor can the uncompressed size be so large that no
	// realistic compression ratio (lzip's discovered worst case is
	// ~1/7090) could have produced this memberSize.
	if t.memberSize > 26 {
		dlimit := 7090*(t.memberSize-26) - 1
		if t.dataSize > dlimit {
			return false
		}
	}
	return true
}
