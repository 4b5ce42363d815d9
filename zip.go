package decompress

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
)

// idZip is the format identifier for zip archives.
const idZip = "zip"

// magicBytesZip contains the magic bytes for a zip archive.
var magicBytesZip = [][]byte{
	{0x50, 0x4B, 0x03, 0x04},
}

var defaultPatternZip = regexp.MustCompile(`(?i)\.zip$`)

// Zip is the adapter for zip archives.
type Zip struct {
	re *regexp.Regexp
}

// NewZip returns a Zip adapter. A nil re keeps the default `.zip` pattern.
func NewZip(re *regexp.Regexp) *Zip {
	if re == nil {
		re = defaultPatternZip
	}
	return &Zip{re: re}
}

// Test reports whether the file name matches the adapter's pattern.
func (z *Zip) Test(name string) bool {
	return z.re.MatchString(filepath.Base(name))
}

// TestMime reports whether the sniffed MIME identifier names a zip archive.
func (z *Zip) TestMime(mime string) bool {
	return mime == mimeZip
}

// List returns the raw entry names in archive order.
func (z *Zip) List(ctx context.Context, archive string) (Listing, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return Listing{}, fmt.Errorf("cannot open zip archive: %w", err)
	}
	defer zr.Close()

	entries, err := listEntries(&zipWalker{zr: &zr.Reader})
	if err != nil {
		return Listing{}, err
	}
	return Listing{ID: idZip, Entries: entries}, nil
}

// Decompress extracts the zip archive below dst.
func (z *Zip) Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot open zip archive: %w", err)
	}
	defer zr.Close()

	files, err := extractEntries(ctx, &zipWalker{zr: &zr.Reader}, dst, opts)
	if err != nil {
		return Decompression{}, err
	}
	return Decompression{ID: idZip, Files: files}, nil
}

// zipWalker is a walker for zip files
type zipWalker struct {
	zr *zip.Reader
	fp int
}

// Type returns the format identifier for zip files
func (z *zipWalker) Type() string {
	return idZip
}

// Next returns the next entry in the zip archive
func (z *zipWalker) Next() (archiveEntry, error) {
	if z.fp >= len(z.zr.File) {
		return nil, io.EOF
	}
	defer func() { z.fp++ }()
	return &zipEntry{zf: z.zr.File[z.fp]}, nil
}

// zipEntry is an entry in a zip archive
type zipEntry struct {
	zf *zip.File
}

// Name returns the name of the entry
func (z *zipEntry) Name() string {
	return z.zf.FileHeader.Name
}

// Mode returns the mode of the entry
func (z *zipEntry) Mode() fs.FileMode {
	return z.zf.FileHeader.Mode()
}

// Linkname returns the symlink target, which zip stores as the entry body
func (z *zipEntry) Linkname() string {
	rc, err := z.zf.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	return string(data)
}

// IsRegular returns true if the entry is a regular file
func (z *zipEntry) IsRegular() bool {
	return z.zf.FileHeader.Mode().IsRegular()
}

// IsDir returns true if the entry is a directory
func (z *zipEntry) IsDir() bool {
	return z.zf.FileHeader.Mode().IsDir()
}

// IsSymlink returns true if the entry is a symlink
func (z *zipEntry) IsSymlink() bool {
	return z.zf.FileHeader.Mode().Type() == fs.ModeSymlink
}

// Open returns a reader for the entry
func (z *zipEntry) Open() (io.ReadCloser, error) {
	return z.zf.Open()
}
