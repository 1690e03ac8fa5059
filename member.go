package lzip

// Block is a half-open byte range [Pos, Pos+Size) within a file, used by
// Index to describe where each member's compressed bytes and the
// uncompressed data they represent live. Grounded on
// original_source/lzip_index.h's Block class.
type Block struct {
	Pos  int64
	Size int64
}

// End returns the position just past the block.
func (b Block) End() int64 { return b.Pos + b.Size }

// Member describes one member's location within a multi-member lzip
// stream: DBlock is its span in uncompressed-data coordinates, MBlock its
// span in file-byte coordinates. Grounded on lzip_index.h's
// Lzip_index::Member.
type Member struct {
	DBlock        Block
	MBlock        Block
	DictionarySize uint32
}
