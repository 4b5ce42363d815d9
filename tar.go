package decompress

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// idTarball is the format identifier for plain tar archives.
const idTarball = "tarball"

// offsetTar is the offset where the magic bytes are located in the file
const offsetTar = 257

// tarHeaderLength is the size of one tar header block.
const tarHeaderLength = 512

// magicBytesTar are the magic bytes for tar files
var magicBytesTar = [][]byte{
	[]byte("ustar\x00tar\x00"),
	[]byte("ustar\x00"),
	[]byte("ustar  \x00"),
}

var defaultPatternTarball = regexp.MustCompile(`(?i)\.tar$`)

// isTar checks if the header matches the magic bytes for tar files
func isTar(data []byte) bool {
	return matchesMagicBytes(data, offsetTar, magicBytesTar)
}

// Tarball is the adapter for uncompressed tar archives.
type Tarball struct {
	re *regexp.Regexp
}

// NewTarball returns a Tarball adapter. A nil re keeps the default
// `.tar` pattern.
func NewTarball(re *regexp.Regexp) *Tarball {
	if re == nil {
		re = defaultPatternTarball
	}
	return &Tarball{re: re}
}

// Test reports whether the file name matches the adapter's pattern.
func (t *Tarball) Test(name string) bool {
	return t.re.MatchString(filepath.Base(name))
}

// TestMime reports whether the sniffed MIME identifier names a tar archive.
func (t *Tarball) TestMime(mime string) bool {
	return mime == mimeTar
}

// List returns the raw entry names in archive order.
func (t *Tarball) List(ctx context.Context, archive string) (Listing, error) {
	f, err := os.Open(archive)
	if err != nil {
		return Listing{}, fmt.Errorf("cannot open archive: %w", err)
	}
	defer f.Close()

	entries, err := listEntries(newTarWalker(f))
	if err != nil {
		return Listing{}, err
	}
	return Listing{ID: idTarball, Entries: entries}, nil
}

// Decompress extracts the tar archive below dst.
func (t *Tarball) Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	f, err := os.Open(archive)
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot open archive: %w", err)
	}
	defer f.Close()

	files, err := extractEntries(ctx, newTarWalker(f), dst, opts)
	if err != nil {
		return Decompression{}, err
	}
	return Decompression{ID: idTarball, Files: files}, nil
}

// tarWalker is a walker for tar streams
type tarWalker struct {
	tr *tar.Reader
}

func newTarWalker(src io.Reader) *tarWalker {
	return &tarWalker{tr: tar.NewReader(src)}
}

// Type returns the format identifier for tar files
func (t *tarWalker) Type() string {
	return idTarball
}

// Next returns the next entry in the tar archive. PAX global headers
// (the `pax_global_header` comment entry git archives carry) are skipped.
func (t *tarWalker) Next() (archiveEntry, error) {
	for {
		hdr, err := t.tr.Next()
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		return &tarEntry{hdr: hdr, tr: t.tr}, nil
	}
}

// tarEntry is an entry in a tar archive
type tarEntry struct {
	hdr *tar.Header
	tr  *tar.Reader
}

// Name returns the name of the entry
func (t *tarEntry) Name() string {
	return t.hdr.Name
}

// Mode returns the mode of the entry
func (t *tarEntry) Mode() fs.FileMode {
	return t.hdr.FileInfo().Mode()
}

// Linkname returns the linkname of the entry
func (t *tarEntry) Linkname() string {
	return t.hdr.Linkname
}

// IsRegular returns true if the entry is a regular file
func (t *tarEntry) IsRegular() bool {
	return t.hdr.Typeflag == tar.TypeReg
}

// IsDir returns true if the entry is a directory
func (t *tarEntry) IsDir() bool {
	return t.hdr.Typeflag == tar.TypeDir
}

// IsSymlink returns true if the entry is a symlink
func (t *tarEntry) IsSymlink() bool {
	return t.hdr.Typeflag == tar.TypeSymlink
}

// Open returns a reader for the entry
func (t *tarEntry) Open() (io.ReadCloser, error) {
	return &noopReaderCloser{t.tr}, nil
}
