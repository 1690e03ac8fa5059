package lzip

import (
	"bytes"
	"io"
	"testing"
)

func TestWriterProducesDecodableStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	want := "round trip through the default writer"
	if _, err := w.Write([]byte(want)); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}

	idx, err := BuildIndex(bytes.NewReader(buf.Bytes()), int64(buf.Len()), Options{IgnoreEmpty: true, IgnoreMarking: true})
	if err != nil {
		t.Fatalf("BuildIndex: %s", err)
	}
	if len(idx.Members()) != 1 {
		t.Fatalf("len(Members()) = %d; want 1", len(idx.Members()))
	}
	if idx.UncompressedSize() != int64(len(want)) {
		t.Errorf("UncompressedSize() = %d; want %d", idx.UncompressedSize(), len(want))
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %s", err)
	}
	got := make([]byte, len(want))
	if _, err := r.Read(got); err != nil {
		t.Fatalf("Read: %s", err)
	}
	if string(got) != want {
		t.Errorf("Read = %q; want %q", got, want)
	}
}

func TestWriterMemberSizeSplitsIntoMultipleMembers(t *testing.T) {
	var buf bytes.Buffer
	opt := DefaultOptions
	opt.MemberSize = 10
	w := NewWriterOptions(&buf, opt)

	payload := bytes.Repeat([]byte("0123456789"), 5) // 50 bytes, 5 members of 10
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}

	idx, err := BuildIndex(bytes.NewReader(buf.Bytes()), int64(buf.Len()), Options{IgnoreEmpty: true, IgnoreMarking: true})
	if err != nil {
		t.Fatalf("BuildIndex: %s", err)
	}
	members := idx.Members()
	if len(members) != 5 {
		t.Fatalf("len(Members()) = %d; want 5", len(members))
	}
	for i, m := range members {
		if m.DBlock.Size != 10 {
			t.Errorf("members[%d].DBlock.Size = %d; want 10", i, m.DBlock.Size)
		}
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %s", err)
	}
	got := make([]byte, len(payload))
	if _, err := io.ReadFull(r, got); err != nil {
		t.Fatalf("Read: %s", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Read = %q; want %q", got, payload)
	}
}

func TestWriterNewMemberWithoutPendingDataIsNoop(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.NewMember(); err != nil {
		t.Fatalf("NewMember on empty buffer: %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Close on a writer with no data written produced %d bytes; want 0", buf.Len())
	}
}

func TestWriterExplicitNewMemberCreatesSeparateMembers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if _, err := w.Write([]byte("alpha")); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if err := w.NewMember(); err != nil {
		t.Fatalf("NewMember: %s", err)
	}
	if _, err := w.Write([]byte("beta")); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}

	idx, err := BuildIndex(bytes.NewReader(buf.Bytes()), int64(buf.Len()), Options{IgnoreEmpty: true, IgnoreMarking: true})
	if err != nil {
		t.Fatalf("BuildIndex: %s", err)
	}
	members := idx.Members()
	if len(members) != 2 {
		t.Fatalf("len(Members()) = %d; want 2", len(members))
	}
	if members[0].DBlock.Size != int64(len("alpha")) || members[1].DBlock.Size != int64(len("beta")) {
		t.Errorf("member sizes = %d, %d; want %d, %d",
			members[0].DBlock.Size, members[1].DBlock.Size, len("alpha"), len("beta"))
	}
}
