package decompress

import (
	"io"
	"regexp"

	"github.com/ulikunitz/xz"
)

// idXz and idTarXz are the format identifiers for bare xz streams and
// xz-compressed tar archives.
const (
	idXz    = "xz"
	idTarXz = "tarxz"
)

// magicBytesXz are the magic bytes for xz compressed files.
// reference https://tukaani.org/xz/xz-file-format-1.0.4.txt
var magicBytesXz = [][]byte{
	{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
}

var (
	defaultPatternXz    = regexp.MustCompile(`(?i)\.xz$`)
	defaultPatternTarXz = regexp.MustCompile(`(?i)\.(tar\.xz|txz)$`)
)

// Xz is the adapter for bare xz streams.
type Xz struct {
	stream
}

// NewXz returns an Xz adapter. A nil re keeps the default `.xz` pattern.
func NewXz(re *regexp.Regexp) *Xz {
	return &Xz{newStream(idXz, defaultPatternXz, re, mimeXz, decompressXzStream)}
}

// TarXz is the adapter for xz-compressed tar archives.
type TarXz struct {
	layeredTar
}

// NewTarXz returns a TarXz adapter. A nil re keeps the default
// `.tar.xz`/`.txz` pattern.
func NewTarXz(re *regexp.Regexp) *TarXz {
	return &TarXz{newLayeredTar(idTarXz, defaultPatternTarXz, re, mimeTarXz, decompressXzStream)}
}

// decompressXzStream returns an io.Reader that decompresses src with the xz
// algorithm.
func decompressXzStream(src io.Reader) (io.Reader, error) {
	return xz.NewReader(src)
}
