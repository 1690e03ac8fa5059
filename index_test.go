package lzip

import (
	"bytes"
	"testing"
)

func TestBlockEnd(t *testing.T) {
	b := Block{Pos: 10, Size: 5}
	if got := b.End(); got != 15 {
		t.Errorf("End() = %d; want 15", got)
	}
}

func buildStream(t *testing.T, chunks ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, c := range chunks {
		if _, err := w.Write([]byte(c)); err != nil {
			t.Fatalf("Write: %s", err)
		}
		if err := w.NewMember(); err != nil {
			t.Fatalf("NewMember: %s", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	return buf.Bytes()
}

func TestBuildIndexSingleMember(t *testing.T) {
	data := buildStream(t, "hello, world")
	idx, err := BuildIndex(bytes.NewReader(data), int64(len(data)), Options{IgnoreEmpty: true, IgnoreMarking: true})
	if err != nil {
		t.Fatalf("BuildIndex: %s", err)
	}
	if got := idx.UncompressedSize(); got != int64(len("hello, world")) {
		t.Errorf("UncompressedSize() = %d; want %d", got, len("hello, world"))
	}
	if got := idx.CompressedSize(); got != int64(len(data)) {
		t.Errorf("CompressedSize() = %d; want %d", got, len(data))
	}
	if got := idx.FileSize(); got != int64(len(data)) {
		t.Errorf("FileSize() = %d; want %d", got, len(data))
	}
	members := idx.Members()
	if len(members) != 1 {
		t.Fatalf("len(Members()) = %d; want 1", len(members))
	}
	if members[0].DBlock.Pos != 0 || members[0].DBlock.Size != int64(len("hello, world")) {
		t.Errorf("members[0].DBlock = %+v; want Pos=0 Size=%d", members[0].DBlock, len("hello, world"))
	}
	if members[0].MBlock.Pos != 0 || members[0].MBlock.End() != int64(len(data)) {
		t.Errorf("members[0].MBlock = %+v; want Pos=0 End=%d", members[0].MBlock, len(data))
	}
}

func TestBuildIndexMultiMember(t *testing.T) {
	data := buildStream(t, "first member", "second member is a bit longer", "third")
	idx, err := BuildIndex(bytes.NewReader(data), int64(len(data)), Options{IgnoreEmpty: true, IgnoreMarking: true})
	if err != nil {
		t.Fatalf("BuildIndex: %s", err)
	}
	members := idx.Members()
	if len(members) != 3 {
		t.Fatalf("len(Members()) = %d; want 3", len(members))
	}

	wantSizes := []int64{
		int64(len("first member")),
		int64(len("second member is a bit longer")),
		int64(len("third")),
	}
	var wantPos int64
	for i, m := range members {
		if m.DBlock.Pos != wantPos {
			t.Errorf("members[%d].DBlock.Pos = %d; want %d", i, m.DBlock.Pos, wantPos)
		}
		if m.DBlock.Size != wantSizes[i] {
			t.Errorf("members[%d].DBlock.Size = %d; want %d", i, m.DBlock.Size, wantSizes[i])
		}
		wantPos += wantSizes[i]
	}
	if members[0].MBlock.Pos != 0 {
		t.Errorf("members[0].MBlock.Pos = %d; want 0", members[0].MBlock.Pos)
	}
	for i := 1; i < len(members); i++ {
		if members[i].MBlock.Pos != members[i-1].MBlock.End() {
			t.Errorf("members[%d].MBlock.Pos = %d; want contiguous with previous member's end %d",
				i, members[i].MBlock.Pos, members[i-1].MBlock.End())
		}
	}
	if idx.CompressedSize() != int64(len(data)) {
		t.Errorf("CompressedSize() = %d; want %d", idx.CompressedSize(), len(data))
	}
	if idx.UncompressedSize() != wantPos {
		t.Errorf("UncompressedSize() = %d; want %d", idx.UncompressedSize(), wantPos)
	}
}

func TestBuildIndexTooShort(t *testing.T) {
	if _, err := BuildIndex(bytes.NewReader([]byte("short")), 5, Options{IgnoreEmpty: true, IgnoreMarking: true}); err == nil {
		t.Error("BuildIndex accepted a file shorter than minMemberSize")
	}
}

func TestBuildIndexRejectsTrailingGarbageWhenNotIgnored(t *testing.T) {
	data := buildStream(t, "payload")
	data = append(data, []byte("garbage-appended-after-the-member")...)
	if _, err := BuildIndex(bytes.NewReader(data), int64(len(data)), Options{IgnoreEmpty: true, IgnoreMarking: true}); err == nil {
		t.Error("BuildIndex accepted trailing garbage with ignoreTrailing=false")
	}
}

func TestBuildIndexToleratesTrailingGarbageWhenIgnored(t *testing.T) {
	data := buildStream(t, "payload")
	withGarbage := append(append([]byte(nil), data...), []byte("garbage-appended-after-the-member")...)
	idx, err := BuildIndex(bytes.NewReader(withGarbage), int64(len(withGarbage)), Options{IgnoreTrailing: true, IgnoreEmpty: true, IgnoreMarking: true})
	if err != nil {
		t.Fatalf("BuildIndex with ignoreTrailing=true: %s", err)
	}
	if idx.CompressedSize() != int64(len(data)) {
		t.Errorf("CompressedSize() = %d; want %d (garbage excluded)", idx.CompressedSize(), len(data))
	}
	if idx.FileSize() != int64(len(withGarbage)) {
		t.Errorf("FileSize() = %d; want %d", idx.FileSize(), len(withGarbage))
	}
}

func TestBuildIndexRejectsCorruptTrailer(t *testing.T) {
	data := buildStream(t, "payload")
	corrupt := append([]byte(nil), data...)
	// flip a byte inside the trailer's memberSize field
	corrupt[len(corrupt)-5] ^= 0xFF
	if _, err := BuildIndex(bytes.NewReader(corrupt), int64(len(corrupt)), Options{IgnoreEmpty: true, IgnoreMarking: true}); err == nil {
		t.Error("BuildIndex accepted a corrupted trailer")
	}
}
