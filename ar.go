package decompress

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blakesmith/ar"
)

// idAr is the format identifier for Unix ar archives.
const idAr = "ar"

// magicBytesAr are the magic bytes for ar files.
var magicBytesAr = [][]byte{
	[]byte("!<arch>\n"),
}

var defaultPatternAr = regexp.MustCompile(`(?i)\.ar$`)

// Ar is the adapter for Unix ar archives. Every member is a regular file;
// the format has no directories or symlinks.
type Ar struct {
	re *regexp.Regexp
}

// NewAr returns an Ar adapter. A nil re keeps the default `.ar` pattern.
func NewAr(re *regexp.Regexp) *Ar {
	if re == nil {
		re = defaultPatternAr
	}
	return &Ar{re: re}
}

// Test reports whether the file name matches the adapter's pattern.
func (a *Ar) Test(name string) bool {
	return a.re.MatchString(filepath.Base(name))
}

// TestMime reports whether the sniffed MIME identifier names an ar archive.
func (a *Ar) TestMime(mime string) bool {
	return mime == mimeAr
}

// List returns the member names in archive order.
func (a *Ar) List(ctx context.Context, archive string) (Listing, error) {
	f, err := os.Open(archive)
	if err != nil {
		return Listing{}, fmt.Errorf("cannot open ar archive: %w", err)
	}
	defer f.Close()

	entries, err := listEntries(&arWalker{r: ar.NewReader(f)})
	if err != nil {
		return Listing{}, err
	}
	return Listing{ID: idAr, Entries: entries}, nil
}

// Decompress extracts the ar archive below dst.
func (a *Ar) Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	f, err := os.Open(archive)
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot open ar archive: %w", err)
	}
	defer f.Close()

	files, err := extractEntries(ctx, &arWalker{r: ar.NewReader(f)}, dst, opts)
	if err != nil {
		return Decompression{}, err
	}
	return Decompression{ID: idAr, Files: files}, nil
}

// arWalker is a walker for ar files
type arWalker struct {
	r *ar.Reader
}

// Type returns the format identifier for ar files
func (w *arWalker) Type() string {
	return idAr
}

// Next returns the next member of the ar archive
func (w *arWalker) Next() (archiveEntry, error) {
	hdr, err := w.r.Next()
	if err != nil {
		return nil, err
	}
	return &arEntry{hdr: hdr, r: w.r}, nil
}

// arEntry is a member of an ar archive
type arEntry struct {
	hdr *ar.Header
	r   io.Reader
}

// Name returns the member name. GNU ar terminates names with a slash,
// which is trimmed.
func (e *arEntry) Name() string {
	return strings.TrimSuffix(strings.TrimSpace(e.hdr.Name), "/")
}

// Mode returns the mode of the member
func (e *arEntry) Mode() fs.FileMode {
	return fs.FileMode(e.hdr.Mode)
}

// Linkname returns the empty string, ar has no symlinks
func (e *arEntry) Linkname() string {
	return ""
}

// IsRegular returns true, every ar member is a regular file
func (e *arEntry) IsRegular() bool {
	return true
}

// IsDir returns false, ar has no directories
func (e *arEntry) IsDir() bool {
	return false
}

// IsSymlink returns false, ar has no symlinks
func (e *arEntry) IsSymlink() bool {
	return false
}

// Open returns a reader for the member
func (e *arEntry) Open() (io.ReadCloser, error) {
	return &noopReaderCloser{e.r}, nil
}
