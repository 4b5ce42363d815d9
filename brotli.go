package decompress

import (
	"io"
	"regexp"

	"github.com/andybalholm/brotli"
)

// idBrotli is the format identifier for brotli streams.
const idBrotli = "br"

// magicBytesBrotli is empty: the brotli format has no magic bytes, so
// content detection cannot identify it and selection relies on the file
// name pattern alone.
var magicBytesBrotli = [][]byte{}

var defaultPatternBrotli = regexp.MustCompile(`(?i)\.br$`)

// Brotli is the adapter for bare brotli streams.
type Brotli struct {
	stream
}

// NewBrotli returns a Brotli adapter. A nil re keeps the default `.br`
// pattern.
func NewBrotli(re *regexp.Regexp) *Brotli {
	return &Brotli{newStream(idBrotli, defaultPatternBrotli, re, mimeBrotli, decompressBrotliStream)}
}

// decompressBrotliStream returns an io.Reader that decompresses src with the
// brotli algorithm.
func decompressBrotliStream(src io.Reader) (io.Reader, error) {
	return brotli.NewReader(src), nil
}
