package lzma

import (
	"io"
	"log"

	"github.com/ulikunitz/lzip/internal/xlog"
)

// debug is the package-wide trace logger. It is nil by default, in which
// case xlog's helpers become no-ops.
var debug xlog.Logger

// debugOn directs decoder/encoder trace output to w.
func debugOn(w io.Writer) {
	debug = log.New(w, "lzma debug: ", log.Lshortfile)
}

// debugOff disables trace output.
func debugOff() {
	debug = nil
}
