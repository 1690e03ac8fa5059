package lzip

import "testing"

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	sizes := []uint32{minDictSize, 1 << 16, 1 << 20, 3 << 20, maxDictSize}
	for _, sz := range sizes {
		h := header{version: formatVersion, dictSize: sz}
		b := h.encode()
		g, err := decodeHeader(b)
		if err != nil {
			t.Fatalf("decodeHeader(dictSize=%d) error: %s", sz, err)
		}
		if g.version != h.version {
			t.Errorf("version = %d; want %d", g.version, h.version)
		}
		// dictSize round-trips only up to the coded byte's granularity;
		// the decoded size must always be >= the requested size and
		// within one sixteenth-step of it.
		if g.dictSize < sz {
			t.Errorf("decoded dictSize %d smaller than requested %d", g.dictSize, sz)
		}
	}
}

func TestDecodeHeaderRejectsBadMagic(t *testing.T) {
	b := header{version: formatVersion, dictSize: minDictSize}.encode()
	b[0] = 'X'
	if _, err := decodeHeader(b); err == nil {
		t.Error("decodeHeader accepted corrupted magic bytes")
	}
}

func TestDecodeHeaderRejectsBadVersion(t *testing.T) {
	b := header{version: formatVersion, dictSize: minDictSize}.encode()
	b[4] = 9
	if _, err := decodeHeader(b); err == nil {
		t.Error("decodeHeader accepted an unsupported format version")
	}
}

func TestCheckPrefix(t *testing.T) {
	if !checkPrefix([]byte("LZIP")) {
		t.Error("checkPrefix(\"LZIP\") = false; want true")
	}
	if !checkPrefix([]byte("LZ")) {
		t.Error("checkPrefix(\"LZ\") = false; want true (partial prefix match)")
	}
	if checkPrefix([]byte("XZIP")) {
		t.Error("checkPrefix(\"XZIP\") = true; want false")
	}
	if checkPrefix(nil) {
		t.Error("checkPrefix(nil) = true; want false")
	}
}

func TestCheckCorrupt(t *testing.T) {
	if checkCorrupt([4]byte{'L', 'Z', 'I', 'P'}) {
		t.Error("checkCorrupt reported a fully valid magic as corrupt")
	}
	if checkCorrupt([4]byte{'X', 'Y', 'Z', 'W'}) {
		t.Error("checkCorrupt reported a fully unrelated sequence as corrupt")
	}
	if !checkCorrupt([4]byte{'L', 'Z', 'X', 'X'}) {
		t.Error("checkCorrupt missed a partially matching (2/4) sequence")
	}
}

func TestDictSizeEncoding(t *testing.T) {
	tests := []uint32{minDictSize, 1 << 13, 3 << 19, 1 << 22, maxDictSize}
	for _, sz := range tests {
		b := encodeDictSize(sz)
		got := decodeDictSize(b)
		if got < sz {
			t.Errorf("encodeDictSize/decodeDictSize(%d) = %d, smaller than input", sz, got)
		}
	}
}
