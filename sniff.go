package decompress

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// MIME identifiers used by content detection and by the TestMime capability
// of every adapter. Layered tar formats get compound identifiers so that a
// gzip stream that carries a tar archive is routed to the layered adapter
// and never swallowed by the bare codec.
const (
	mimeTar     = "application/x-tar"
	mimeZip     = "application/zip"
	mimeGZip    = "application/gzip"
	mimeBzip2   = "application/x-bzip2"
	mimeXz      = "application/x-xz"
	mimeZstd    = "application/zstd"
	mimeLz4     = "application/x-lz4"
	mimeBrotli  = "application/x-brotli"
	mimeSnappy  = "application/x-snappy-framed"
	mimeRar     = "application/vnd.rar"
	mimeAr      = "application/x-archive"
	mime7z      = "application/x-7z-compressed"
	mimeTarGZip = "application/x-tar+gzip"
	mimeTarXz   = "application/x-tar+xz"
	mimeTarBz2  = "application/x-tar+bzip2"
	mimeTarZstd = "application/x-tar+zstd"
)

// sniffSignature ties a magic-byte table to the MIME identifier it implies.
// The table is consulted in order; all signatures are mutually exclusive.
type sniffSignature struct {
	mime       string
	offset     int
	magicBytes [][]byte
}

var sniffSignatures = []sniffSignature{
	{mimeZip, 0, magicBytesZip},
	{mime7z, 0, magicBytes7zip},
	{mimeRar, 0, magicBytesRar},
	{mimeGZip, 0, magicBytesGZip},
	{mimeBzip2, 0, magicBytesBzip2},
	{mimeXz, 0, magicBytesXz},
	{mimeZstd, 0, magicBytesZstd},
	{mimeLz4, 0, magicBytesLz4},
	{mimeSnappy, 0, magicBytesSnappy},
	{mimeAr, 0, magicBytesAr},
	{mimeTar, offsetTar, magicBytesTar},
}

// compoundMimes maps a bare compression MIME to the layered identifier used
// when the decompressed stream turns out to be a tar archive.
var compoundMimes = map[string]string{
	mimeGZip:  mimeTarGZip,
	mimeXz:    mimeTarXz,
	mimeBzip2: mimeTarBz2,
	mimeZstd:  mimeTarZstd,
}

// maxHeaderLength is the number of bytes content detection needs to probe.
var maxHeaderLength int

// init calculates the maximum header length
func init() {
	for _, sig := range sniffSignatures {
		needs := sig.offset
		for _, mb := range sig.magicBytes {
			if len(mb)+sig.offset > needs {
				needs = len(mb) + sig.offset
			}
		}
		if needs > maxHeaderLength {
			maxHeaderLength = needs
		}
	}
}

// matchesMagicBytes checks if data matches any of the magic byte sequences
// at the given offset.
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	for _, mb := range magicBytes {
		if offset+len(mb) > len(data) {
			continue
		}
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}
	return false
}

// sniffMime classifies header against the signature table and returns the
// matching MIME identifier, or "" if nothing matches.
func sniffMime(header []byte) string {
	for _, sig := range sniffSignatures {
		if matchesMagicBytes(header, sig.offset, sig.magicBytes) {
			return sig.mime
		}
	}
	return ""
}

// sniffArchive probes the first bytes of the named file and returns its MIME
// identifier. For single-stream compression formats it additionally peeks at
// the decompressed stream: if that stream is a tar archive, the compound
// tar+codec identifier is returned instead of the bare one. An empty string
// means the sniff was inconclusive.
func sniffArchive(archive string) (string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return "", fmt.Errorf("cannot open archive: %w", err)
	}
	defer f.Close()

	header := make([]byte, maxHeaderLength)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("cannot read archive header: %w", err)
	}
	mime := sniffMime(header[:n])

	compound, ok := compoundMimes[mime]
	if !ok {
		return mime, nil
	}

	// rewind and peek at the decompressed stream for a tar header
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return mime, nil
	}
	decomp, ok := sniffDecompressors[mime]
	if !ok {
		return mime, nil
	}
	stream, err := decomp(f)
	if err != nil {
		return mime, nil
	}
	defer closeDecoded(stream)

	inner := make([]byte, tarHeaderLength)
	n, err = io.ReadFull(stream, inner)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return mime, nil
	}
	if isTar(inner[:n]) {
		return compound, nil
	}
	return mime, nil
}

// sniffDecompressors are the stream decoders used for the nested tar probe.
var sniffDecompressors = map[string]decompressionFunc{
	mimeGZip:  decompressGZipStream,
	mimeXz:    decompressXzStream,
	mimeBzip2: decompressBzip2Stream,
	mimeZstd:  decompressZstdStream,
}
