package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/lzip"
)

// nextVolumeName mirrors original_source/main.cc's next_filename: bump the
// trailing 5-digit counter appended to the base name, carrying into the
// preceding digit on rollover. Reports false once all digits are 9s (the
// "Too many volume files" case).
func nextVolumeName(name string) (string, bool) {
	b := []byte(name)
	for i := len(b) - 1; i >= 0 && i >= len(b)-5; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b), true
		}
		b[i] = '0'
	}
	return string(b), false
}

// compressVolumes splits in into a sequence of lzip files named
// name00001.lz, name00002.lz, ..., each holding the compressed form of up
// to volumeSize bytes of uncompressed input, grounded on main.cc's
// compress() volume-rollover logic. The size of the compressed output is
// not measured, so a volume of poorly compressible data can be larger
// than volumeSize.
func compressVolumes(in io.Reader, name string, opt lzip.Options, po processOptions) error {
	volName := name + "00001.lz"

	memberSize := opt.MemberSize
	if memberSize == 0 || memberSize > uint64(po.volumeSize) {
		memberSize = uint64(po.volumeSize)
	}
	volOpt := opt
	volOpt.MemberSize = memberSize

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	for {
		if !po.force {
			if _, err := os.Stat(volName); err == nil {
				return fmt.Errorf("output file %s already exists", volName)
			}
		}
		f, err := os.Create(volName)
		if err != nil {
			return err
		}
		cancel := cleanupOnSignal(volName)

		zw := lzip.NewWriterOptions(f, volOpt)
		n := len(data)
		if uint64(n) > uint64(po.volumeSize) {
			n = int(po.volumeSize)
		}
		chunk := data[:n]
		data = data[n:]

		if _, err := zw.Write(chunk); err != nil {
			f.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		cancel()

		if len(data) == 0 {
			break
		}
		next, ok := nextVolumeName(strings.TrimSuffix(volName, ".lz"))
		if !ok {
			return fmt.Errorf("too many volume files")
		}
		volName = next + ".lz"
	}
	return nil
}
