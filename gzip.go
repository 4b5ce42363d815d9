package decompress

import (
	"compress/gzip"
	"io"
	"regexp"
)

// idGz and idTarGz are the format identifiers for bare gzip streams and
// gzip-compressed tar archives.
const (
	idGz    = "gz"
	idTarGz = "targz"
)

// magicBytesGZip are the magic bytes for gzip compressed files.
var magicBytesGZip = [][]byte{
	{0x1f, 0x8b},
}

var (
	defaultPatternGz    = regexp.MustCompile(`(?i)\.gz$`)
	defaultPatternTarGz = regexp.MustCompile(`(?i)\.(tar\.gz|tgz)$`)
)

// Gz is the adapter for bare gzip streams.
type Gz struct {
	stream
}

// NewGz returns a Gz adapter. A nil re keeps the default `.gz` pattern.
func NewGz(re *regexp.Regexp) *Gz {
	return &Gz{newStream(idGz, defaultPatternGz, re, mimeGZip, decompressGZipStream)}
}

// TarGz is the adapter for gzip-compressed tar archives.
type TarGz struct {
	layeredTar
}

// NewTarGz returns a TarGz adapter. A nil re keeps the default
// `.tar.gz`/`.tgz` pattern.
func NewTarGz(re *regexp.Regexp) *TarGz {
	return &TarGz{newLayeredTar(idTarGz, defaultPatternTarGz, re, mimeTarGZip, decompressGZipStream)}
}

// decompressGZipStream returns an io.Reader that decompresses src with the
// gzip algorithm.
func decompressGZipStream(src io.Reader) (io.Reader, error) {
	return gzip.NewReader(src)
}
