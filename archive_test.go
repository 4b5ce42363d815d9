package decompress_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/blakesmith/ar"
	"github.com/dsnet/compress/bzip2"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// archiveContent describes one entry of a generated test archive.
type archiveContent struct {
	Name       string
	Content    []byte
	Mode       fs.FileMode
	Filetype   byte
	Linktarget string
}

// packTar creates a tar archive with the given content
func packTar(t *testing.T, content []archiveContent) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	tw := tar.NewWriter(buf)
	for _, c := range content {
		hdr := &tar.Header{
			Name:     c.Name,
			Mode:     int64(c.Mode),
			Size:     int64(len(c.Content)),
			Linkname: c.Linktarget,
			Typeflag: c.Filetype,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("error writing tar header: %v", err)
		}
		if _, err := tw.Write(c.Content); err != nil {
			t.Fatalf("error writing tar data: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("error closing tar writer: %v", err)
	}
	return buf.Bytes()
}

// packZip creates a zip archive with the given content. Directory entries
// need a trailing slash in Name, symlink entries carry the target in
// Linktarget.
func packZip(t *testing.T, content []archiveContent) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, c := range content {
		hdr := &zip.FileHeader{Name: c.Name}
		switch c.Filetype {
		case tar.TypeDir:
			hdr.SetMode(fs.ModeDir | c.Mode)
		case tar.TypeSymlink:
			hdr.SetMode(fs.ModeSymlink | c.Mode)
		default:
			hdr.SetMode(c.Mode)
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("error writing zip header: %v", err)
		}
		data := c.Content
		if c.Filetype == tar.TypeSymlink {
			data = []byte(c.Linktarget)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("error writing zip data: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("error closing zip writer: %v", err)
	}
	return buf.Bytes()
}

// packAr creates an ar archive with the given content
func packAr(t *testing.T, content []archiveContent) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	aw := ar.NewWriter(buf)
	if err := aw.WriteGlobalHeader(); err != nil {
		t.Fatalf("error writing ar global header: %v", err)
	}
	for _, c := range content {
		hdr := &ar.Header{
			Name:    c.Name,
			Mode:    int64(c.Mode),
			Size:    int64(len(c.Content)),
			ModTime: time.Now(),
		}
		if err := aw.WriteHeader(hdr); err != nil {
			t.Fatalf("error writing ar header: %v", err)
		}
		if _, err := aw.Write(c.Content); err != nil {
			t.Fatalf("error writing ar data: %v", err)
		}
	}
	return buf.Bytes()
}

// compressGzip compresses data with gzip
func compressGzip(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w := gzip.NewWriter(buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing gzip data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing gzip writer: %v", err)
	}
	return buf.Bytes()
}

// compressBzip2 compresses data with bzip2
func compressBzip2(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w, err := bzip2.NewWriter(buf, &bzip2.WriterConfig{Level: bzip2.BestSpeed})
	if err != nil {
		t.Fatalf("error creating bzip2 writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing bzip2 data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing bzip2 writer: %v", err)
	}
	return buf.Bytes()
}

// compressXz compresses data with xz
func compressXz(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w, err := xz.NewWriter(buf)
	if err != nil {
		t.Fatalf("error creating xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing xz data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing xz writer: %v", err)
	}
	return buf.Bytes()
}

// compressZstd compresses data with zstandard
func compressZstd(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w, err := zstd.NewWriter(buf)
	if err != nil {
		t.Fatalf("error creating zstd writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing zstd data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing zstd writer: %v", err)
	}
	return buf.Bytes()
}

// compressLz4 compresses data with lz4
func compressLz4(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w := lz4.NewWriter(buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing lz4 data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing lz4 writer: %v", err)
	}
	return buf.Bytes()
}

// compressBrotli compresses data with brotli
func compressBrotli(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w := brotli.NewWriter(buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing brotli data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing brotli writer: %v", err)
	}
	return buf.Bytes()
}

// compressSnappy compresses data with framed snappy
func compressSnappy(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w := snappy.NewBufferedWriter(buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("error writing snappy data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("error closing snappy writer: %v", err)
	}
	return buf.Bytes()
}

// writeArchive stores data under name in a fresh temp dir and returns the
// full path
func writeArchive(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("error writing archive fixture: %v", err)
	}
	return path
}

// innerTar is the canonical two-file archive used by the round-trip tests:
// an enclosing folder with a file at the root and one in a subfolder.
func innerTar(t *testing.T) []byte {
	t.Helper()

	return packTar(t, []archiveContent{
		{Name: "root/", Mode: 0755, Filetype: tar.TypeDir},
		{Name: "root/a.txt", Content: []byte("hello"), Mode: 0644, Filetype: tar.TypeReg},
		{Name: "root/sub/", Mode: 0755, Filetype: tar.TypeDir},
		{Name: "root/sub/b.txt", Content: []byte("world"), Mode: 0644, Filetype: tar.TypeReg},
	})
}
