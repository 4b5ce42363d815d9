package decompress

import (
	"compress/bzip2"
	"io"
	"regexp"
)

// idBz2 and idTarBz2 are the format identifiers for bare bzip2 streams and
// bzip2-compressed tar archives.
const (
	idBz2    = "bz2"
	idTarBz2 = "tarbz"
)

// magicBytesBzip2 are the magic bytes for bzip2 compressed files.
var magicBytesBzip2 = [][]byte{
	{0x42, 0x5A, 0x68},
}

var (
	defaultPatternBz2    = regexp.MustCompile(`(?i)\.bz2$`)
	defaultPatternTarBz2 = regexp.MustCompile(`(?i)\.(tar\.bz2|tbz2?)$`)
)

// Bz2 is the adapter for bare bzip2 streams.
type Bz2 struct {
	stream
}

// NewBz2 returns a Bz2 adapter. A nil re keeps the default `.bz2` pattern.
func NewBz2(re *regexp.Regexp) *Bz2 {
	return &Bz2{newStream(idBz2, defaultPatternBz2, re, mimeBzip2, decompressBzip2Stream)}
}

// TarBz2 is the adapter for bzip2-compressed tar archives.
type TarBz2 struct {
	layeredTar
}

// NewTarBz2 returns a TarBz2 adapter. A nil re keeps the default
// `.tar.bz2`/`.tbz` pattern.
func NewTarBz2(re *regexp.Regexp) *TarBz2 {
	return &TarBz2{newLayeredTar(idTarBz2, defaultPatternTarBz2, re, mimeTarBz2, decompressBzip2Stream)}
}

// decompressBzip2Stream returns an io.Reader that decompresses src with the
// bzip2 algorithm.
func decompressBzip2Stream(src io.Reader) (io.Reader, error) {
	return bzip2.NewReader(src), nil
}
