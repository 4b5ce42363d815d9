package decompress

import (
	"io"
	"regexp"

	"github.com/golang/snappy"
)

// idSnappy is the format identifier for framed snappy streams.
const idSnappy = "sz"

// magicBytesSnappy are the magic bytes of the snappy framing format.
var magicBytesSnappy = [][]byte{
	append([]byte{0xFF, 0x06, 0x00, 0x00}, []byte("sNaPpY")...),
}

var defaultPatternSnappy = regexp.MustCompile(`(?i)\.(sz|snappy)$`)

// Snappy is the adapter for framed snappy streams.
type Snappy struct {
	stream
}

// NewSnappy returns a Snappy adapter. A nil re keeps the default
// `.sz`/`.snappy` pattern.
func NewSnappy(re *regexp.Regexp) *Snappy {
	return &Snappy{newStream(idSnappy, defaultPatternSnappy, re, mimeSnappy, decompressSnappyStream)}
}

// decompressSnappyStream returns an io.Reader that decompresses src with the
// snappy algorithm.
func decompressSnappyStream(src io.Reader) (io.Reader, error) {
	return snappy.NewReader(src), nil
}
