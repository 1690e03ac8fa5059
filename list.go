package lzip

import (
	"fmt"
	"io"
	"math"
)

// ListEntry is one line of list-mode output: a file's member count plus
// compressed/uncompressed totals, grounded on original_source/list.cc's
// list_line/list_files column layout.
type ListEntry struct {
	Name             string
	Members          int
	UncompressedSize int64
	CompressedSize   int64
	DictionarySize   uint32
}

// SavedPercent returns the space-saving percentage list.cc prints, or
// -Inf when UncompressedSize is zero (list.cc prints "-INF%" there,
// since the file only grew from nothing).
func (e ListEntry) SavedPercent() float64 {
	if e.UncompressedSize == 0 {
		return math.Inf(-1)
	}
	return 100.0 - (100.0*float64(e.CompressedSize))/float64(e.UncompressedSize)
}

// List builds a ListEntry for one file from an Index, matching the
// accounting list.cc performs per input file.
func List(idx *Index, name string) ListEntry {
	return ListEntry{
		Name:             name,
		Members:          len(idx.Members()),
		UncompressedSize: idx.UncompressedSize(),
		CompressedSize:   idx.CompressedSize(),
		DictionarySize:   maxDictionarySize(idx),
	}
}

func maxDictionarySize(idx *Index) uint32 {
	var max uint32
	for _, m := range idx.Members() {
		if m.DictionarySize > max {
			max = m.DictionarySize
		}
	}
	return max
}

// WriteLine formats one list_line-style row: sizes, percentage saved,
// and the file name.
func WriteLine(w io.Writer, e ListEntry) error {
	if e.UncompressedSize > 0 {
		_, err := fmt.Fprintf(w, "%14d %14d %6.2f%%  %s\n",
			e.UncompressedSize, e.CompressedSize, e.SavedPercent(), e.Name)
		return err
	}
	_, err := fmt.Fprintf(w, "%14d %14d   -INF%%  %s\n",
		e.UncompressedSize, e.CompressedSize, e.Name)
	return err
}

// WriteVerboseHeader writes list.cc's verbosity>=1 column heading,
// printed once before the first entry.
func WriteVerboseHeader(w io.Writer, verbose bool) error {
	if verbose {
		if _, err := io.WriteString(w, "   dict   memb  trail "); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "  uncompressed     compressed   saved  name\n")
	return err
}

// WriteMemberTable writes the per-member breakdown list.cc prints at
// verbosity>=2 for multi-member files.
func WriteMemberTable(w io.Writer, idx *Index) error {
	if _, err := io.WriteString(w, " member      data_pos      data_size     member_pos    member_size\n"); err != nil {
		return err
	}
	for i, m := range idx.Members() {
		if _, err := fmt.Fprintf(w, "%6d %14d %14d %14d %14d\n",
			i+1, m.DBlock.Pos, m.DBlock.Size, m.MBlock.Pos, m.MBlock.Size); err != nil {
			return err
		}
	}
	return nil
}
