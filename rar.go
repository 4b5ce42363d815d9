package decompress

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nwaples/rardecode"
)

// idRar is the format identifier for rar archives.
const idRar = "rar"

// magicBytesRar are the magic bytes for rar files.
var magicBytesRar = [][]byte{
	{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00},       // Rar 1.5
	{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, // Rar 5.0
}

var defaultPatternRar = regexp.MustCompile(`(?i)\.rar$`)

// Rar is the adapter for rar archives. Only regular files and directories
// are extracted; the rar codec does not expose symlink targets, so other
// member types are skipped the way the upstream unrar tooling skips them.
type Rar struct {
	re *regexp.Regexp
}

// NewRar returns a Rar adapter. A nil re keeps the default `.rar` pattern.
func NewRar(re *regexp.Regexp) *Rar {
	if re == nil {
		re = defaultPatternRar
	}
	return &Rar{re: re}
}

// Test reports whether the file name matches the adapter's pattern.
func (r *Rar) Test(name string) bool {
	return r.re.MatchString(filepath.Base(name))
}

// TestMime reports whether the sniffed MIME identifier names a rar archive.
func (r *Rar) TestMime(mime string) bool {
	return mime == mimeRar
}

// List returns the raw entry names in archive order, directories with a
// trailing separator.
func (r *Rar) List(ctx context.Context, archive string) (Listing, error) {
	rc, err := rardecode.OpenReader(archive, "")
	if err != nil {
		return Listing{}, fmt.Errorf("cannot open rar archive: %w", err)
	}
	defer rc.Close()

	var entries []string
	for {
		fh, err := rc.Next()
		if err == io.EOF {
			return Listing{ID: idRar, Entries: entries}, nil
		}
		if err != nil {
			return Listing{}, fmt.Errorf("cannot read rar entry: %w", err)
		}
		entries = append(entries, rarEntryName(fh))
	}
}

// Decompress extracts the rar archive below dst.
func (r *Rar) Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	rc, err := rardecode.OpenReader(archive, "")
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot open rar archive: %w", err)
	}
	defer rc.Close()

	files, err := extractEntries(ctx, &rarWalker{r: &rc.Reader}, dst, opts)
	if err != nil {
		return Decompression{}, err
	}
	return Decompression{ID: idRar, Files: files}, nil
}

func rarEntryName(fh *rardecode.FileHeader) string {
	name := strings.ReplaceAll(fh.Name, "\\", "/")
	if fh.IsDir && !strings.HasSuffix(name, "/") {
		name += "/"
	}
	return name
}

// rarWalker is a walker for rar files. Members that are neither regular
// files nor directories are skipped at the walker.
type rarWalker struct {
	r *rardecode.Reader
}

// Type returns the format identifier for rar files
func (w *rarWalker) Type() string {
	return idRar
}

// Next returns the next file or directory entry in the rar archive
func (w *rarWalker) Next() (archiveEntry, error) {
	for {
		fh, err := w.r.Next()
		if err != nil {
			return nil, err
		}
		if !fh.IsDir && !fh.Mode().IsRegular() {
			continue
		}
		return &rarEntry{fh: fh, r: w.r}, nil
	}
}

// rarEntry is an entry in a rar archive
type rarEntry struct {
	fh *rardecode.FileHeader
	r  io.Reader
}

// Name returns the name of the entry
func (e *rarEntry) Name() string {
	return rarEntryName(e.fh)
}

// Mode returns the mode of the entry
func (e *rarEntry) Mode() fs.FileMode {
	return fs.FileMode(e.fh.Mode())
}

// Linkname symlinks are not supported
func (e *rarEntry) Linkname() string {
	return ""
}

// IsRegular returns true if the entry is a regular file
func (e *rarEntry) IsRegular() bool {
	return !e.fh.IsDir && e.fh.Mode().IsRegular()
}

// IsDir returns true if the entry is a directory
func (e *rarEntry) IsDir() bool {
	return e.fh.IsDir
}

// IsSymlink returns false, the rar codec does not expose symlink targets
func (e *rarEntry) IsSymlink() bool {
	return false
}

// Open returns a reader for the entry
func (e *rarEntry) Open() (io.ReadCloser, error) {
	return &noopReaderCloser{e.r}, nil
}
