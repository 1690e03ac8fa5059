/*
Package lzip implements the lzip file format: a container around one or
more LZMA-compressed "members", each with its own header, range-coded
payload, and CRC/size-checked trailer, designed for robust archival
storage and safe multi-member concatenation.

The wire format and decode semantics are implemented bit-for-bit against
lzip's own reference source (see DESIGN.md); the LZMA codec itself lives
in the lzma subpackage.
*/
package lzip
