// Command golzip is a small lzip-compatible compressor/decompressor,
// grounded on the teacher's cmd/lzmago driver (preset-digit argument
// filtering, ogier/pflag flag parsing) and on original_source/main.cc's
// mode selection and exit-status convention.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/ogier/pflag"

	"github.com/ulikunitz/lzip"
)

const usageStr = `Usage: golzip [OPTION]... [FILE]...
Compress or decompress FILEs in the lzip format (by default, compress FILEs
in place, appending .lz).

  -c, --stdout               write to standard output, keep input files
  -d, --decompress           force decompression
  -f, --force                overwrite existing output files
  -k, --keep                 keep (don't delete) input files
  -l, --list                 print total compressed/uncompressed size
  -o, --output=FILE          write to FILE instead of the default name
  -q, --quiet                suppress warnings
  -t, --test                 test compressed file integrity
  -v, --verbose              be verbose; two -v show per-member details
  -0 .. -9                   compression preset; default is 6
  -s, --dictionary-size=SIZE set dictionary size limit (accepts Ki/Mi/Gi)
  -m, --match-length=LEN     set match length limit
  -b, --member-size=SIZE     set member size limit (accepts k/M/G)
  -S, --volume-size=SIZE     create multivolume archive with volumes of SIZE
  -a, --trailing-error       exit with error status if trailing data is found
      --empty-error          exit with error status if empty member is found
      --marking-error        exit with error status if a marked member is found
      --loose-trailing       allow trailing data seeming corrupt header

With no FILE, or when FILE is -, read standard input.
`

// mode mirrors original_source/main.cc's enum Mode.
type mode int

const (
	modeCompress mode = iota
	modeDecompress
	modeList
	modeTest
)

func usage(w io.Writer) { fmt.Fprint(w, usageStr) }

// preset scans os.Args for a bare -N compression-level digit, the same
// filtering trick cmd/lzmago's Preset.filter performs, since pflag has no
// built-in way to accept "-6" as a standalone flag.
type preset int

const defaultPreset preset = 6

func (p *preset) filter() {
	args := make([]string, 1, len(os.Args))
	args[0] = os.Args[0]
	for _, arg := range os.Args[1:] {
		if len(arg) == 2 && arg[0] == '-' && arg[1] >= '0' && arg[1] <= '9' {
			*p = preset(arg[1] - '0')
			continue
		}
		args = append(args, arg)
	}
	os.Args = args
}

// countVerbose counts repeated -v flags (ogier/pflag has no CountP, unlike
// newer pflag forks) so -vv can select the per-member list table the same
// way original_source/main.cc's verbosity counter does.
func countVerbose() int {
	n := 0
	for _, arg := range os.Args[1:] {
		switch {
		case arg == "--":
			return n
		case arg == "--verbose":
			n++
		case len(arg) >= 2 && arg[0] == '-' && arg[1] != '-':
			for _, c := range arg[1:] {
				if c == 'v' {
					n++
				}
			}
		}
	}
	return n
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	log.SetPrefix(cmdName + ": ")
	log.SetFlags(0)

	lvl := defaultPreset
	lvl.filter()
	verboseCount := countVerbose()

	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }

	var (
		stdout        = pflag.BoolP("stdout", "c", false, "")
		decompress    = pflag.BoolP("decompress", "d", false, "")
		force         = pflag.BoolP("force", "f", false, "")
		keep          = pflag.BoolP("keep", "k", false, "")
		list          = pflag.BoolP("list", "l", false, "")
		output        = pflag.StringP("output", "o", "", "")
		quiet         = pflag.BoolP("quiet", "q", false, "")
		test          = pflag.BoolP("test", "t", false, "")
		_             = pflag.BoolP("verbose", "v", false, "")
		dictSizeStr   = pflag.StringP("dictionary-size", "s", "", "")
		matchLenStr   = pflag.StringP("match-length", "m", "", "")
		memberStr     = pflag.StringP("member-size", "b", "", "")
		volumeStr     = pflag.StringP("volume-size", "S", "", "")
		trailingErr   = pflag.BoolP("trailing-error", "a", false, "")
		emptyErr      = pflag.Bool("empty-error", false, "")
		markingErr    = pflag.Bool("marking-error", false, "")
		looseTrailing = pflag.Bool("loose-trailing", false, "")
	)
	pflag.Parse()

	m := modeCompress
	if *decompress {
		m = modeDecompress
	}
	if *list {
		m = modeList
	}
	if *test {
		m = modeTest
	}

	opt := lzip.DefaultOptions
	opt.Level = int(lvl)
	if *trailingErr {
		opt.IgnoreTrailing = false
	}
	if *emptyErr {
		opt.IgnoreEmpty = false
	}
	if *markingErr {
		opt.IgnoreMarking = false
	}
	if *looseTrailing {
		opt.LooseTrailing = true
	}

	if *dictSizeStr != "" {
		n, err := units.RAMInBytes(*dictSizeStr)
		if err != nil {
			log.Fatalf("invalid dictionary size %q: %s", *dictSizeStr, err)
		}
		opt.DictSize = uint32(n)
	}
	if *matchLenStr != "" {
		n, err := units.RAMInBytes(*matchLenStr)
		if err != nil {
			log.Fatalf("invalid match length %q: %s", *matchLenStr, err)
		}
		opt.MatchLenLimit = int(n)
	}
	if *memberStr != "" {
		n, err := units.RAMInBytes(*memberStr)
		if err != nil {
			log.Fatalf("invalid member size %q: %s", *memberStr, err)
		}
		opt.MemberSize = uint64(n)
	}
	var volumeSize int64
	if *volumeStr != "" {
		n, err := units.RAMInBytes(*volumeStr)
		if err != nil {
			log.Fatalf("invalid volume size %q: %s", *volumeStr, err)
		}
		volumeSize = n
	}

	args := pflag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	retval := 0
	for _, name := range args {
		if err := processFile(m, name, opt, processOptions{
			stdout:     *stdout || m == modeList || m == modeTest,
			force:      *force,
			keep:       *keep,
			quiet:      *quiet,
			verbose:    verboseCount,
			output:     *output,
			volumeSize: volumeSize,
		}); err != nil {
			if !*quiet {
				log.Print(err)
			}
			retval = exitCodeFor(err)
		}
	}
	os.Exit(retval)
}

type processOptions struct {
	stdout     bool
	force      bool
	keep       bool
	quiet      bool
	verbose    int
	output     string
	volumeSize int64
}

// exitCodeFor maps this driver's errors onto original_source/main.cc's
// exit-status convention: 2 for corrupt or invalid input (FormatError,
// IntegrityError, and StreamError, which covers truncation and rejected
// trailing garbage), 1 for every other error (environment/usage problems).
func exitCodeFor(err error) int {
	switch err.(type) {
	case *lzip.FormatError, *lzip.IntegrityError:
		return 2
	case *lzip.StreamError:
		return 2
	default:
		return 1
	}
}

func processFile(m mode, name string, opt lzip.Options, po processOptions) error {
	switch m {
	case modeCompress:
		return compressFile(name, opt, po)
	case modeDecompress:
		return decompressFile(name, opt, po)
	case modeTest:
		return testFile(name, opt)
	case modeList:
		return listFile(name, opt, po)
	}
	return nil
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

func compressFile(name string, opt lzip.Options, po processOptions) error {
	in, err := openInput(name)
	if err != nil {
		return err
	}
	defer in.Close()

	if po.volumeSize > 0 {
		return compressVolumes(in, name, opt, po)
	}

	outName := name + ".lz"
	if po.output != "" {
		outName = po.output
	}
	var out io.WriteCloser
	if po.stdout || name == "-" {
		out = nopWriteCloser{os.Stdout}
	} else {
		if !po.force {
			if _, err := os.Stat(outName); err == nil {
				return fmt.Errorf("output file %s already exists", outName)
			}
		}
		f, err := os.Create(outName)
		if err != nil {
			return err
		}
		cancel := cleanupOnSignal(outName)
		defer cancel()
		out = f
	}
	defer out.Close()

	zw := lzip.NewWriterOptions(out, opt)
	if _, err := io.Copy(zw, in); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if !po.keep && name != "-" && !po.stdout {
		return os.Remove(name)
	}
	return nil
}

func decompressFile(name string, opt lzip.Options, po processOptions) error {
	in, err := openInput(name)
	if err != nil {
		return err
	}
	defer in.Close()

	zr, err := lzip.NewReaderOptions(in, opt)
	if err != nil {
		return err
	}

	var out io.WriteCloser
	outName := strings.TrimSuffix(name, ".lz")
	if po.output != "" {
		outName = po.output
	}
	if po.stdout || name == "-" || outName == name {
		out = nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outName)
		if err != nil {
			return err
		}
		cancel := cleanupOnSignal(outName)
		defer cancel()
		out = f
	}
	defer out.Close()

	if _, err := io.Copy(out, zr); err != nil {
		return err
	}
	if !po.keep && name != "-" && !po.stdout {
		return os.Remove(name)
	}
	return nil
}

func testFile(name string, opt lzip.Options) error {
	in, err := openInput(name)
	if err != nil {
		return err
	}
	defer in.Close()

	zr, err := lzip.NewReaderOptions(in, opt)
	if err != nil {
		return err
	}
	_, err = io.Copy(io.Discard, zr)
	return err
}

func listFile(name string, opt lzip.Options, po processOptions) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return err
	}
	idx, err := lzip.BuildIndex(f, st.Size(), opt)
	if err != nil {
		return err
	}
	if err := lzip.WriteVerboseHeader(os.Stdout, po.verbose >= 1); err != nil {
		return err
	}
	entry := lzip.List(idx, name)
	if po.verbose >= 1 {
		fmt.Printf("%6x %5d %6d ", entry.DictionarySize, entry.Members, st.Size()-entry.CompressedSize)
	}
	if err := lzip.WriteLine(os.Stdout, entry); err != nil {
		return err
	}
	if po.verbose >= 2 && entry.Members > 1 {
		return lzip.WriteMemberTable(os.Stdout, idx)
	}
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
