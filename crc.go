package lzip

import "hash/crc32"

// CRC32 accumulates lzip's per-member checksum. It wraps the standard
// library's IEEE table the same way the teacher's root-package crc.go
// wraps hash/crc32/hash/crc64 rather than hand-rolling the polynomial
// table, and is cross-checked against sorairolake/lzip-go's use of
// crc32.Update with crc32.IEEETable for the same field.
type CRC32 struct {
	state uint32
}

// NewCRC32 returns a checksum accumulator ready to consume bytes.
func NewCRC32() *CRC32 {
	return &CRC32{}
}

// Write implements io.Writer so a CRC32 can sit in an io.MultiWriter chain.
func (c *CRC32) Write(p []byte) (int, error) {
	c.state = crc32.Update(c.state, crc32.IEEETable, p)
	return len(p), nil
}

// Sum32 returns the checksum accumulated so far.
func (c *CRC32) Sum32() uint32 {
	return c.state
}

// Reset clears the accumulator back to its initial state, for reuse across
// members.
func (c *CRC32) Reset() {
	c.state = 0
}
