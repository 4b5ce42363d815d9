package decompress

import (
	"context"
	"fmt"
	"path/filepath"
)

// Decompressor is the capability every format adapter implements: detection
// by file name pattern, detection by sniffed MIME identifier, listing and
// extraction.
type Decompressor interface {
	// Test reports whether the adapter claims the given file name.
	Test(name string) bool

	// TestMime reports whether the adapter claims the given MIME identifier.
	TestMime(mime string) bool

	// List returns the raw in-archive entry names without writing anything.
	List(ctx context.Context, archive string) (Listing, error)

	// Decompress extracts the archive below dst according to opts.
	Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error)
}

// Decompression is the result of an extraction: the format that was used
// and the ordered list of written file paths (directories excluded).
type Decompression struct {
	ID    string
	Files []string
}

// Listing is the result of listing an archive: the format that was used and
// the raw entry names in archive order.
type Listing struct {
	ID      string
	Entries []string
}

// Registry holds an ordered list of format adapters. Selection tries the
// adapters strictly in registration order and picks the first match; that
// order is a documented property of the registry, not an accident, which is
// why DefaultRegistry registers the layered tar adapters before the bare
// single-stream codecs. A Registry is read-only after construction and safe
// for concurrent use.
type Registry struct {
	decompressors []Decompressor
}

// NewRegistry builds a registry from the given adapters. The set replaces
// the default one entirely; there is no merging.
func NewRegistry(decompressors ...Decompressor) *Registry {
	return &Registry{decompressors: append([]Decompressor{}, decompressors...)}
}

// DefaultRegistry returns a registry with every supported format, in this
// order: targz, tarxz, tarbz, tarzst, tarball, zip, rar, 7z, ar, gz, bz2,
// xz, zst, lz4, br, sz.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewTarGz(nil),
		NewTarXz(nil),
		NewTarBz2(nil),
		NewTarZst(nil),
		NewTarball(nil),
		NewZip(nil),
		NewRar(nil),
		NewSevenZip(nil),
		NewAr(nil),
		NewGz(nil),
		NewBz2(nil),
		NewXz(nil),
		NewZst(nil),
		NewLz4(nil),
		NewBrotli(nil),
		NewSnappy(nil),
	)
}

// CanDecompress reports whether any registered adapter claims the given
// file name or MIME identifier.
func (r *Registry) CanDecompress(nameOrMime string) bool {
	for _, d := range r.decompressors {
		if d.Test(nameOrMime) || d.TestMime(nameOrMime) {
			return true
		}
	}
	return false
}

// List selects the matching adapter and returns the archive's raw entry
// names without writing anything to disk.
func (r *Registry) List(ctx context.Context, archive string, opts *ExtractOptions) (Listing, error) {
	if opts == nil {
		opts = NewExtractOptions()
	}
	d, err := r.find(archive, opts)
	if err != nil {
		return Listing{}, err
	}
	return d.List(ctx, archive)
}

// Decompress selects the matching adapter and extracts the archive below
// dst. The output directory is created if missing. Partial output already
// written when an error occurs is not rolled back.
func (r *Registry) Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	if opts == nil {
		opts = NewExtractOptions()
	}
	d, err := r.find(archive, opts)
	if err != nil {
		return Decompression{}, err
	}
	return d.Decompress(ctx, archive, dst, opts)
}

// find selects the first adapter claiming the archive. With content
// detection enabled the sniffed MIME identifier is consulted first and the
// file name pattern only serves as fallback when the sniff is inconclusive.
func (r *Registry) find(archive string, opts *ExtractOptions) (Decompressor, error) {
	if opts.DetectContent() {
		mime, err := sniffArchive(archive)
		if err != nil {
			return nil, err
		}
		if mime != "" {
			opts.Logger().Debug("content detection", "archive", archive, "mime", mime)
			for _, d := range r.decompressors {
				if d.TestMime(mime) {
					return d, nil
				}
			}
		}
	}
	for _, d := range r.decompressors {
		if d.Test(archive) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingCompressor, filepath.Base(archive))
}

// Decompress extracts archive below dst using the default registry.
func Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	return DefaultRegistry().Decompress(ctx, archive, dst, opts)
}

// List lists archive using the default registry.
func List(ctx context.Context, archive string, opts *ExtractOptions) (Listing, error) {
	return DefaultRegistry().List(ctx, archive, opts)
}

// CanDecompress reports whether the default registry recognizes the given
// file name or MIME identifier.
func CanDecompress(nameOrMime string) bool {
	return DefaultRegistry().CanDecompress(nameOrMime)
}
