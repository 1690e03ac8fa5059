package lzip

import "io"

// Index describes every member in a (possibly multi-member) lzip file,
// built by a single backward scan from EOF. Grounded bit-for-bit on
// original_source/lzip_index.cc's Lzip_index constructor and
// skip_trailing_data.
type Index struct {
	members  []Member
	fileSize int64
}

// Members returns the index's members in forward (file) order.
func (idx *Index) Members() []Member { return idx.members }

// UncompressedSize returns the total uncompressed size across all
// members.
func (idx *Index) UncompressedSize() int64 {
	if len(idx.members) == 0 {
		return 0
	}
	return idx.members[len(idx.members)-1].DBlock.End()
}

// CompressedSize returns the total file size spanned by recognized
// members (excludes any tolerated trailing garbage).
func (idx *Index) CompressedSize() int64 {
	if len(idx.members) == 0 {
		return 0
	}
	return idx.members[len(idx.members)-1].MBlock.End()
}

// FileSize returns the full file size, including any trailing data not
// part of a member.
func (idx *Index) FileSize() int64 { return idx.fileSize }

const blockSize = 16384

// BuildIndex scans r (size bytes long) backward from EOF, validating each
// member's trailer/header pair, and returns the resulting Index. When the
// file ends in data that isn't a recognizable member, opt.IgnoreTrailing
// controls whether that is tolerated (as lzip's default -a/--trailing-error
// absence does) or reported as a StreamError; opt.LooseTrailing controls
// whether trailing bytes that merely resemble a corrupt header are
// tolerated as ordinary trailing data instead of reported as corrupt.
// opt.IgnoreEmpty controls whether an empty (data_size==0) member is
// tolerated or reported as a FormatError.
func BuildIndex(r io.ReaderAt, size int64, opt Options) (*Index, error) {
	if size < minMemberSize {
		return nil, newFormatError("input file is too short")
	}

	var hdrBuf [headerSize]byte
	if _, err := r.ReadAt(hdrBuf[:], 0); err != nil {
		return nil, newStreamError("reading first member header: " + err.Error())
	}
	if _, err := decodeHeader(hdrBuf); err != nil {
		return nil, err
	}

	var members []Member
	pos := size
	for pos >= minMemberSize {
		var trlBuf [trailerSize]byte
		if _, err := r.ReadAt(trlBuf[:], pos-trailerSize); err != nil {
			return nil, newStreamError("reading member trailer: " + err.Error())
		}
		t := decodeTrailer(trlBuf)

		if int64(t.memberSize) > pos || !t.checkConsistency() {
			if len(members) == 0 {
				newPos, ok, err := skipTrailingData(r, pos, opt.IgnoreTrailing, opt.LooseTrailing)
				if err != nil {
					return nil, err
				}
				if ok {
					pos = newPos
					continue
				}
			}
			return nil, newFormatError("bad trailer near end of file")
		}

		if _, err := r.ReadAt(hdrBuf[:], pos-int64(t.memberSize)); err != nil {
			return nil, newStreamError("reading member header: " + err.Error())
		}
		h, err := decodeHeader(hdrBuf)
		if err != nil {
			if len(members) == 0 {
				newPos, ok, serr := skipTrailingData(r, pos, opt.IgnoreTrailing, opt.LooseTrailing)
				if serr != nil {
					return nil, serr
				}
				if ok {
					pos = newPos
					continue
				}
			}
			return nil, newFormatError("bad header near end of file")
		}

		if t.dataSize == 0 && !opt.IgnoreEmpty {
			return nil, newFormatError("empty member not allowed")
		}

		pos -= int64(t.memberSize)
		members = append(members, Member{
			DBlock:         Block{Pos: 0, Size: int64(t.dataSize)},
			MBlock:         Block{Pos: pos, Size: int64(t.memberSize)},
			DictionarySize: h.dictSize,
		})
	}

	if pos != 0 || len(members) == 0 {
		return nil, newFormatError("cannot build member index")
	}

	// members were appended while scanning backward; reverse to forward
	// file order, then prefix-sum dblock positions.
	for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
		members[i], members[j] = members[j], members[i]
	}
	var end int64
	for i := range members {
		members[i].DBlock.Pos = end
		end = members[i].DBlock.End()
	}

	return &Index{members: members, fileSize: size}, nil
}

// skipTrailingData implements the 16 KiB block-wise backward scan used
// when the bytes immediately before pos don't parse as a trailer: some
// data may have been appended after the last real member (padding,
// concatenated non-lzip bytes). It looks for the last valid
// trailer+header pair at or before pos and, if found and tolerated,
// repositions pos to that member's end and reports ok=true so the
// caller's loop reads that member's trailer next and continues from there.
func skipTrailingData(r io.ReaderAt, pos int64, ignoreTrailing, looseTrailing bool) (newPos int64, ok bool, err error) {
	if pos < minMemberSize {
		return 0, false, nil
	}
	bsize := int(pos % blockSize)
	bufCap := blockSize + trailerSize - 1 + headerSize
	if bsize <= bufCap-blockSize {
		bsize += blockSize
	}
	searchSize := bsize
	rdSize := bsize
	ipos := pos - int64(rdSize)

	buffer := make([]byte, bufCap)
	for {
		if _, err := r.ReadAt(buffer[:rdSize], ipos); err != nil {
			return 0, false, newStreamError("seeking member trailer: " + err.Error())
		}
		maxMSB := byte((ipos + int64(searchSize)) >> 56)
		for i := searchSize; i >= trailerSize; i-- {
			if buffer[i-1] > maxMSB {
				continue
			}
			var trlBuf [trailerSize]byte
			copy(trlBuf[:], buffer[i-trailerSize:i])
			t := decodeTrailer(trlBuf)
			if t.memberSize == 0 {
				for i > trailerSize && buffer[i-9] == 0 {
					i--
				}
				continue
			}
			if int64(t.memberSize) > ipos+int64(i) || !t.checkConsistency() {
				continue
			}
			var hdrBuf [headerSize]byte
			if _, err := r.ReadAt(hdrBuf[:], ipos+int64(i)-int64(t.memberSize)); err != nil {
				return 0, false, newStreamError("reading member header: " + err.Error())
			}
			h, err := decodeHeader(hdrBuf)
			if err != nil {
				continue
			}
			if checkPrefix(buffer[i:min(len(buffer), i+4)]) && bsize-i > 0 {
				return 0, false, newFormatError("last member in input file is truncated or corrupt")
			}
			if !looseTrailing && bsize-i >= headerSize {
				var trailBytes [4]byte
				copy(trailBytes[:], buffer[i:i+4])
				if checkCorrupt(trailBytes) {
					return 0, false, newFormatError("trailing data resembles a corrupt header")
				}
			}
			if !ignoreTrailing {
				return 0, false, newStreamError("trailing data after last member")
			}
			_ = h
			newPos = ipos + int64(i)
			return newPos, true, nil
		}
		if ipos <= 0 {
			return 0, false, newFormatError("bad trailer near end of file")
		}
		bsize = bufCap
		searchSize = bsize - headerSize
		rdSize = blockSize
		ipos -= int64(rdSize)
		copy(buffer[rdSize:], buffer[:bufCap-rdSize])
	}
}
