package lzip

import (
	"bufio"
	"io"

	"github.com/ulikunitz/lzip/lzma"
)

// Writer compresses data into a (possibly multi-member) lzip stream.
// Callers that want several members in one output (e.g. to bound member
// size, or to concatenate independently-compressible chunks) call
// NewMember between writes; a single Close without any explicit
// NewMember call produces a one-member file, matching lzip's default
// behavior.
type Writer struct {
	w   *bufio.Writer
	opt Options

	dictSize      uint32
	matchLenLimit int
	fast          bool

	buf []byte // uncompressed bytes accumulated for the current member
}

// NewWriter wraps w using DefaultOptions (level 6).
func NewWriter(w io.Writer) *Writer {
	return NewWriterOptions(w, DefaultOptions)
}

// NewWriterOptions wraps w using the given Options.
func NewWriterOptions(w io.Writer, opt Options) *Writer {
	dictSize, matchLenLimit, fast := opt.resolved()
	return &Writer{
		w:             bufio.NewWriter(w),
		opt:           opt,
		dictSize:      dictSize,
		matchLenLimit: matchLenLimit,
		fast:          fast,
	}
}

// Write buffers uncompressed bytes for the current member. The member is
// only actually compressed and flushed to the underlying writer when the
// accumulated size reaches Options.MemberSize (if set), NewMember is
// called, or Close runs.
func (z *Writer) Write(p []byte) (int, error) {
	z.buf = append(z.buf, p...)
	if z.opt.MemberSize != 0 {
		memberSize := int(z.opt.MemberSize)
		for len(z.buf) >= memberSize {
			chunk := z.buf[:memberSize]
			if err := z.flushMember(chunk); err != nil {
				return 0, err
			}
			z.buf = append([]byte(nil), z.buf[memberSize:]...)
		}
	}
	return len(p), nil
}

// NewMember flushes any buffered bytes as a complete member and starts a
// fresh one, even if Options.MemberSize hasn't been reached.
func (z *Writer) NewMember() error {
	if len(z.buf) == 0 {
		return nil
	}
	err := z.flushMember(z.buf)
	z.buf = z.buf[:0]
	return err
}

func (z *Writer) flushMember(data []byte) error {
	// A dictionary never needs to be larger than the data it must cover:
	// shrink the coded size toward the member's actual length (down to
	// minDictSize) the way lzip itself picks the smallest dictionary
	// that still fits the input, e.g. an empty member codes dict=4KiB
	// rather than the level preset's full size.
	dictSize := z.dictSize
	if uint32(len(data)) < dictSize {
		dictSize = uint32(len(data))
	}
	h := header{version: formatVersion, dictSize: dictSize}
	hb := h.encode()
	if _, err := z.w.Write(hb[:]); err != nil {
		return err
	}

	crc := NewCRC32()
	crc.Write(data)

	cw := &countingByteWriter{w: z.w}
	enc := lzma.NewEncoder(cw, data, z.matchLenLimit, z.fast)
	if err := enc.Encode(); err != nil {
		return err
	}

	memberSize := uint64(headerSize) + cw.n + trailerSize
	t := trailer{
		crc:        crc.Sum32(),
		dataSize:   uint64(len(data)),
		memberSize: memberSize,
	}
	tb := t.encode()
	_, err := z.w.Write(tb[:])
	return err
}

// Close flushes any remaining buffered data as a final member and flushes
// the underlying writer.
func (z *Writer) Close() error {
	if err := z.NewMember(); err != nil {
		return err
	}
	return z.w.Flush()
}

// countingByteWriter tracks how many bytes have passed through, so the
// trailer's member_size field (which must include the header and trailer
// themselves) can be computed after encoding without a second pass.
type countingByteWriter struct {
	w io.ByteWriter
	n uint64
}

func (c *countingByteWriter) WriteByte(b byte) error {
	if err := c.w.WriteByte(b); err != nil {
		return err
	}
	c.n++
	return nil
}
