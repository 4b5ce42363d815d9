package decompress

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/bodgit/sevenzip"
)

// id7z is the format identifier for 7zip archives.
const id7z = "7z"

// magicBytes7zip are the magic bytes for 7zip files.
var magicBytes7zip = [][]byte{
	{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C},
}

var defaultPattern7z = regexp.MustCompile(`(?i)\.7z$`)

// SevenZip is the adapter for 7zip archives.
type SevenZip struct {
	re *regexp.Regexp
}

// NewSevenZip returns a SevenZip adapter. A nil re keeps the default `.7z`
// pattern.
func NewSevenZip(re *regexp.Regexp) *SevenZip {
	if re == nil {
		re = defaultPattern7z
	}
	return &SevenZip{re: re}
}

// Test reports whether the file name matches the adapter's pattern.
func (s *SevenZip) Test(name string) bool {
	return s.re.MatchString(filepath.Base(name))
}

// TestMime reports whether the sniffed MIME identifier names a 7zip archive.
func (s *SevenZip) TestMime(mime string) bool {
	return mime == mime7z
}

// List returns the raw entry names in archive order.
func (s *SevenZip) List(ctx context.Context, archive string) (Listing, error) {
	r, err := sevenzip.OpenReader(archive)
	if err != nil {
		return Listing{}, fmt.Errorf("cannot open 7zip archive: %w", err)
	}
	defer r.Close()

	entries, err := listEntries(&sevenZipWalker{r: &r.Reader})
	if err != nil {
		return Listing{}, err
	}
	return Listing{ID: id7z, Entries: entries}, nil
}

// Decompress extracts the 7zip archive below dst.
func (s *SevenZip) Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	r, err := sevenzip.OpenReader(archive)
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot open 7zip archive: %w", err)
	}
	defer r.Close()

	files, err := extractEntries(ctx, &sevenZipWalker{r: &r.Reader}, dst, opts)
	if err != nil {
		return Decompression{}, err
	}
	return Decompression{ID: id7z, Files: files}, nil
}

// sevenZipWalker is a walker for 7zip files
type sevenZipWalker struct {
	r  *sevenzip.Reader
	fp int
}

// Type returns the format identifier for 7zip files
func (w *sevenZipWalker) Type() string {
	return id7z
}

// Next returns the next entry in the 7zip archive
func (w *sevenZipWalker) Next() (archiveEntry, error) {
	if w.fp >= len(w.r.File) {
		return nil, io.EOF
	}
	defer func() { w.fp++ }()
	return &sevenZipEntry{f: w.r.File[w.fp]}, nil
}

// sevenZipEntry is an entry in a 7zip archive
type sevenZipEntry struct {
	f *sevenzip.File
}

// Name returns the name of the entry
func (e *sevenZipEntry) Name() string {
	return e.f.Name
}

// Mode returns the mode of the entry
func (e *sevenZipEntry) Mode() fs.FileMode {
	return e.f.FileInfo().Mode()
}

// Linkname returns the symlink target, which 7zip stores as the entry body
func (e *sevenZipEntry) Linkname() string {
	rc, err := e.f.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	return string(data)
}

// IsRegular returns true if the entry is a regular file
func (e *sevenZipEntry) IsRegular() bool {
	return e.f.FileInfo().Mode().IsRegular()
}

// IsDir returns true if the entry is a directory
func (e *sevenZipEntry) IsDir() bool {
	return e.f.FileInfo().Mode().IsDir()
}

// IsSymlink returns true if the entry is a symlink
func (e *sevenZipEntry) IsSymlink() bool {
	return e.f.FileInfo().Mode().Type() == fs.ModeSymlink
}

// Open returns a reader for the entry
func (e *sevenZipEntry) Open() (io.ReadCloser, error) {
	return e.f.Open()
}
