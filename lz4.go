package decompress

import (
	"io"
	"regexp"

	"github.com/pierrec/lz4/v4"
)

// idLz4 is the format identifier for lz4 frame streams.
const idLz4 = "lz4"

// magicBytesLz4 are the magic bytes for lz4 frame compressed files.
// reference https://android.googlesource.com/platform/external/lz4/+/HEAD/doc/lz4_Frame_format.md
var magicBytesLz4 = [][]byte{
	{0x04, 0x22, 0x4D, 0x18},
}

var defaultPatternLz4 = regexp.MustCompile(`(?i)\.lz4$`)

// Lz4 is the adapter for bare lz4 frame streams.
type Lz4 struct {
	stream
}

// NewLz4 returns an Lz4 adapter. A nil re keeps the default `.lz4` pattern.
func NewLz4(re *regexp.Regexp) *Lz4 {
	return &Lz4{newStream(idLz4, defaultPatternLz4, re, mimeLz4, decompressLz4Stream)}
}

// decompressLz4Stream returns an io.Reader that decompresses src with the
// lz4 algorithm.
func decompressLz4Stream(src io.Reader) (io.Reader, error) {
	return lz4.NewReader(src), nil
}
