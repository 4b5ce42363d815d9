package decompress

import (
	"io"
	"regexp"

	"github.com/klauspost/compress/zstd"
)

// idZst and idTarZst are the format identifiers for bare zstandard streams
// and zstandard-compressed tar archives.
const (
	idZst    = "zst"
	idTarZst = "tarzst"
)

// magicBytesZstd are the magic bytes for zstandard compressed files.
// reference: https://www.rfc-editor.org/rfc/rfc8878.html
var magicBytesZstd = [][]byte{
	{0x28, 0xB5, 0x2F, 0xFD},
}

var (
	defaultPatternZst    = regexp.MustCompile(`(?i)\.zst$`)
	defaultPatternTarZst = regexp.MustCompile(`(?i)\.(tar\.zst|tzst)$`)
)

// Zst is the adapter for bare zstandard streams.
type Zst struct {
	stream
}

// NewZst returns a Zst adapter. A nil re keeps the default `.zst` pattern.
func NewZst(re *regexp.Regexp) *Zst {
	return &Zst{newStream(idZst, defaultPatternZst, re, mimeZstd, decompressZstdStream)}
}

// TarZst is the adapter for zstandard-compressed tar archives.
type TarZst struct {
	layeredTar
}

// NewTarZst returns a TarZst adapter. A nil re keeps the default
// `.tar.zst`/`.tzst` pattern.
func NewTarZst(re *regexp.Regexp) *TarZst {
	return &TarZst{newLayeredTar(idTarZst, defaultPatternTarZst, re, mimeTarZstd, decompressZstdStream)}
}

// decompressZstdStream returns an io.Reader that decompresses src with the
// zstandard algorithm. The decoder holds worker goroutines, so the reader is
// returned as an io.Closer and consumers close it when done.
func decompressZstdStream(src io.Reader) (io.Reader, error) {
	decoder, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}
