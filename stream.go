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
)

// decompressionFunc turns a compressed byte stream into its decompressed
// equivalent.
type decompressionFunc func(io.Reader) (io.Reader, error)

// stream is the shared base for single-file compression adapters (gz, bz2,
// xz, zst, lz4, br, sz). The whole decoded stream is treated as one regular
// file entry named after the archive with the outer extension removed, and
// that synthetic entry runs through the regular extraction engine so strip,
// filter and map apply uniformly.
type stream struct {
	id     string
	re     *regexp.Regexp
	mime   string
	decomp decompressionFunc
}

func newStream(id string, defaultRe, re *regexp.Regexp, mime string, decomp decompressionFunc) stream {
	if re == nil {
		re = defaultRe
	}
	return stream{id: id, re: re, mime: mime, decomp: decomp}
}

// Test reports whether the file name matches the adapter's pattern.
func (s stream) Test(name string) bool {
	return s.re.MatchString(filepath.Base(name))
}

// TestMime reports whether the sniffed MIME identifier names this format.
func (s stream) TestMime(mime string) bool {
	return mime == s.mime
}

// List returns the single file name the stream would decompress to. The name
// derives from the archive's file name, so no decoding happens, but the
// archive must exist like it must for every other adapter.
func (s stream) List(ctx context.Context, archive string) (Listing, error) {
	if _, err := os.Stat(archive); err != nil {
		return Listing{}, fmt.Errorf("cannot open archive: %w", err)
	}
	return Listing{ID: s.id, Entries: []string{outputName(archive)}}, nil
}

// Decompress decodes the whole stream into one file below dst.
func (s stream) Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	f, err := os.Open(archive)
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot open archive: %w", err)
	}
	defer f.Close()

	decoded, err := s.decomp(f)
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot decompress %s stream: %w", s.id, err)
	}
	defer closeDecoded(decoded)

	walker := &fileWalker{typ: s.id, name: outputName(archive), src: decoded}
	files, err := extractEntries(ctx, walker, dst, opts)
	if err != nil {
		return Decompression{}, err
	}
	return Decompression{ID: s.id, Files: files}, nil
}

// outputName derives the decompressed file name from the archive name by
// removing the outer extension.
func outputName(archive string) string {
	name := filepath.Base(archive)
	trimmed := strings.TrimSuffix(name, filepath.Ext(name))
	if trimmed == "" || trimmed == name {
		return name + ".decompressed"
	}
	return trimmed
}

// fileWalker yields exactly one regular-file entry.
type fileWalker struct {
	typ  string
	name string
	src  io.Reader
	done bool
}

func (f *fileWalker) Type() string {
	return f.typ
}

func (f *fileWalker) Next() (archiveEntry, error) {
	if f.done {
		return nil, io.EOF
	}
	f.done = true
	return &fileEntry{name: f.name, src: f.src}, nil
}

// fileEntry is the synthetic entry of a single-file stream.
type fileEntry struct {
	name string
	src  io.Reader
}

func (f *fileEntry) Name() string      { return f.name }
func (f *fileEntry) Mode() fs.FileMode { return 0644 }
func (f *fileEntry) Linkname() string  { return "" }
func (f *fileEntry) IsRegular() bool   { return true }
func (f *fileEntry) IsDir() bool       { return false }
func (f *fileEntry) IsSymlink() bool   { return false }
func (f *fileEntry) Open() (io.ReadCloser, error) {
	return &noopReaderCloser{f.src}, nil
}

// closeDecoded releases a decoded stream if the codec handed out a closable
// one (the zstd decoder holds worker goroutines until closed).
func closeDecoded(decoded io.Reader) {
	if closer, ok := decoded.(io.Closer); ok {
		closer.Close()
	}
}

// noopReaderCloser wraps an io.Reader with a no-op Close.
type noopReaderCloser struct {
	io.Reader
}

func (n *noopReaderCloser) Close() error {
	return nil
}
