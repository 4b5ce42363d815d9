package decompress

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// layeredTar is the shared base for tar archives wrapped in a whole-stream
// compression layer (tar.gz, tar.xz, tar.bz2, tar.zst). The outer codec
// decodes to an intermediate byte stream which feeds the generic tar walker;
// the inner layer is always tar, so no second round of detection runs.
type layeredTar struct {
	id     string
	re     *regexp.Regexp
	mime   string
	decomp decompressionFunc
}

func newLayeredTar(id string, defaultRe, re *regexp.Regexp, mime string, decomp decompressionFunc) layeredTar {
	if re == nil {
		re = defaultRe
	}
	return layeredTar{id: id, re: re, mime: mime, decomp: decomp}
}

// Test reports whether the file name matches the adapter's pattern.
func (l layeredTar) Test(name string) bool {
	return l.re.MatchString(filepath.Base(name))
}

// TestMime reports whether the sniffed MIME identifier names this layered
// format.
func (l layeredTar) TestMime(mime string) bool {
	return mime == l.mime
}

// List returns the raw entry names of the inner tar archive.
func (l layeredTar) List(ctx context.Context, archive string) (Listing, error) {
	f, err := os.Open(archive)
	if err != nil {
		return Listing{}, fmt.Errorf("cannot open archive: %w", err)
	}
	defer f.Close()

	decoded, err := l.decomp(f)
	if err != nil {
		return Listing{}, fmt.Errorf("cannot decompress %s stream: %w", l.id, err)
	}
	defer closeDecoded(decoded)

	entries, err := listEntries(newTarWalker(decoded))
	if err != nil {
		return Listing{}, err
	}
	return Listing{ID: l.id, Entries: entries}, nil
}

// Decompress strips the compression layer and extracts the inner tar archive
// below dst.
func (l layeredTar) Decompress(ctx context.Context, archive, dst string, opts *ExtractOptions) (Decompression, error) {
	f, err := os.Open(archive)
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot open archive: %w", err)
	}
	defer f.Close()

	decoded, err := l.decomp(f)
	if err != nil {
		return Decompression{}, fmt.Errorf("cannot decompress %s stream: %w", l.id, err)
	}
	defer closeDecoded(decoded)

	files, err := extractEntries(ctx, newTarWalker(decoded), dst, opts)
	if err != nil {
		return Decompression{}, err
	}
	return Decompression{ID: l.id, Files: files}, nil
}
