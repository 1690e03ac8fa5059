package lzip

import (
	"bufio"
	"errors"
	"io"

	"github.com/ulikunitz/lzip/internal/xlog"
	"github.com/ulikunitz/lzip/lzma"
)

// Reader decompresses a (possibly multi-member) lzip stream, presenting
// the concatenation of every member's uncompressed data as one
// io.Reader, the same streaming shape the teacher's top-level Reader
// gives xz streams. It decodes one member at a time (bounding memory use
// to a single member's uncompressed size rather than the whole stream,
// unlike sorairolake/lzip-go's Reader, which io.ReadAll's the compressed
// input up front) and chains into the next member as soon as the current
// one's trailer checks out.
type Reader struct {
	r   *bufio.Reader
	opt Options

	dec      *lzma.Decoder
	w        *crcCountWriter
	crc      *CRC32
	pending  []byte // undelivered bytes from the current member
	dataOut  uint64
	memberIn *countingByteReader // counts header+payload+trailer bytes read for the current member

	done bool
}

// NewReader wraps r, decompressing on demand as Read is called.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderOptions(r, DefaultOptions)
}

// NewReaderOptions is NewReader with explicit policy toggles
// (Options.IgnoreEmpty, Options.IgnoreMarking); compression-time fields
// like DictSize are unused on the read path, since every parameter
// needed to decode a member is already stored in its header.
func NewReaderOptions(r io.Reader, opt Options) (*Reader, error) {
	z := &Reader{r: bufio.NewReader(r), opt: opt}
	if err := z.startMember(); err != nil {
		if err == io.EOF {
			z.done = true
			return z, nil
		}
		return nil, err
	}
	return z, nil
}

func (z *Reader) startMember() error {
	var hdrBuf [headerSize]byte
	if _, err := io.ReadFull(z.r, hdrBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return newStreamError("truncated member header")
		}
		return err
	}
	h, err := decodeHeader(hdrBuf)
	if err != nil {
		return err
	}
	xlog.Printf(debug, "starting member: dictSize=%d", h.dictSize)
	z.crc = NewCRC32()
	z.dataOut = 0
	z.w = &crcCountWriter{crc: z.crc, count: &z.dataOut}
	z.memberIn = &countingByteReader{r: z.r, n: headerSize}
	dec, err := lzma.NewDecoder(z.memberIn, z.w, h.dictSize, z.opt.IgnoreMarking)
	if err != nil {
		var lerr *lzma.Error
		if errors.As(err, &lerr) {
			return newFormatError(lerr.Msg)
		}
		if err == io.EOF {
			return newStreamError("truncated member")
		}
		return err
	}
	z.dec = dec
	return nil
}

// countingByteReader tracks how many bytes have been read through it, so a
// member's trailer-stored member_size (header+payload+trailer) can be
// verified against what was actually consumed from the stream.
type countingByteReader struct {
	r io.ByteReader
	n uint64
}

func (c *countingByteReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}
	c.n++
	return b, nil
}

// crcCountWriter feeds every decoded byte both to the running CRC and to a
// byte counter, while buffering the actual bytes for delivery to the
// caller's Read — kept deliberately simple (one extra copy) rather than
// threading a ring buffer through lzma.Decoder, since this package is
// already responsible for the copy from its internal bufio.Writer.
type crcCountWriter struct {
	crc   *CRC32
	count *uint64
	buf   []byte
}

func (w *crcCountWriter) Write(p []byte) (int, error) {
	w.crc.Write(p)
	*w.count += uint64(len(p))
	w.buf = append(w.buf, p...)
	return len(p), nil
}

var debug xlog.Logger

// Read implements io.Reader, decoding one member at a time and chaining
// into the next when the current one ends with an EOS marker.
func (z *Reader) Read(p []byte) (int, error) {
	for {
		if len(z.pending) > 0 {
			n := copy(p, z.pending)
			z.pending = z.pending[n:]
			return n, nil
		}
		if z.done {
			return 0, io.EOF
		}
		if err := z.decodeMember(); err != nil {
			return 0, err
		}
	}
}

func (z *Reader) decodeMember() error {
	out := z.dec
	marker, _, err := out.Decode()
	if err != nil {
		if err == io.EOF {
			return newStreamError("unexpected end of file inside member")
		}
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	z.pending = z.w.buf
	z.w.buf = nil

	if marker != lzma.MarkerEOS {
		return newFormatError("unsupported in-stream marker")
	}

	var trlBuf [trailerSize]byte
	if _, err := io.ReadFull(z.r, trlBuf[:]); err != nil {
		return newStreamError("truncated member trailer")
	}
	z.memberIn.n += trailerSize
	t := decodeTrailer(trlBuf)
	if t.crc != z.crc.Sum32() {
		return newIntegrityError("CRC mismatch")
	}
	if t.dataSize != z.dataOut {
		return newIntegrityError("uncompressed size mismatch")
	}
	if t.dataSize == 0 && !z.opt.IgnoreEmpty {
		return newFormatError("empty member not allowed")
	}
	if t.memberSize != z.memberIn.n {
		return newIntegrityError("member size mismatch")
	}

	_, err = z.r.Peek(1)
	if err == io.EOF {
		z.done = true
		return nil
	}
	if z.opt.IgnoreTrailing {
		next, _ := z.r.Peek(4)
		var m [4]byte
		copy(m[:], next)
		if !checkPrefix(next) && (z.opt.LooseTrailing || !checkCorrupt(m)) {
			z.done = true
			return nil
		}
	}
	return z.startMember()
}
