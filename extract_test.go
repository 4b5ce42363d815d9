package decompress_test

import (
	"archive/tar"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrous-labs/decompress"
)

func TestDecompressStripIdentity(t *testing.T) {
	archive := writeArchive(t, "inner.tar", innerTar(t))
	dst := t.TempDir()

	res, err := decompress.Decompress(context.Background(), archive, dst, nil)
	require.NoError(t, err)
	require.Equal(t, "tarball", res.ID)
	require.Equal(t, []string{
		filepath.Join(dst, "root", "a.txt"),
		filepath.Join(dst, "root", "sub", "b.txt"),
	}, res.Files)

	a, err := os.ReadFile(filepath.Join(dst, "root", "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(a))
	b, err := os.ReadFile(filepath.Join(dst, "root", "sub", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, "world", string(b))
}

func TestDecompressStripOne(t *testing.T) {
	archive := writeArchive(t, "inner.tar", innerTar(t))
	dst := t.TempDir()

	res, err := decompress.Decompress(context.Background(), archive, dst,
		decompress.NewExtractOptions(decompress.WithStrip(1)))
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dst, "a.txt"),
		filepath.Join(dst, "sub", "b.txt"),
	}, res.Files)

	// the enclosing folder itself was consumed by stripping
	require.NoDirExists(t, filepath.Join(dst, "root"))

	a, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(a))
}

func TestDecompressStripConsumesEntry(t *testing.T) {
	// a.txt has exactly two segments, so strip=2 drops it entirely
	content := packTar(t, []archiveContent{
		{Name: "root/a.txt", Content: []byte("hello"), Mode: 0644, Filetype: tar.TypeReg},
		{Name: "root/sub/b.txt", Content: []byte("world"), Mode: 0644, Filetype: tar.TypeReg},
	})
	archive := writeArchive(t, "inner.tar", content)
	dst := t.TempDir()

	res, err := decompress.Decompress(context.Background(), archive, dst,
		decompress.NewExtractOptions(decompress.WithStrip(2)))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dst, "b.txt")}, res.Files)
	require.NoFileExists(t, filepath.Join(dst, "a.txt"))
}

func TestDecompressFilter(t *testing.T) {
	archive := writeArchive(t, "inner.tar", innerTar(t))
	dst := t.TempDir()

	res, err := decompress.Decompress(context.Background(), archive, dst,
		decompress.NewExtractOptions(decompress.WithFilter(func(e decompress.EntryInfo) bool {
			return !strings.HasSuffix(e.Path, "b.txt")
		})))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dst, "root", "a.txt")}, res.Files)
	require.NoFileExists(t, filepath.Join(dst, "root", "sub", "b.txt"))
}

func TestDecompressFilterSeesAbsolutePaths(t *testing.T) {
	archive := writeArchive(t, "inner.tar", innerTar(t))
	dst := t.TempDir()

	_, err := decompress.Decompress(context.Background(), archive, dst,
		decompress.NewExtractOptions(decompress.WithFilter(func(e decompress.EntryInfo) bool {
			require.True(t, filepath.IsAbs(e.Path))
			require.True(t, filepath.IsAbs(e.OutputDir))
			require.True(t, strings.HasPrefix(e.Path, e.OutputDir))
			return true
		})))
	require.NoError(t, err)
}

func TestDecompressMap(t *testing.T) {
	archive := writeArchive(t, "inner.tar", innerTar(t))
	dst := t.TempDir()

	res, err := decompress.Decompress(context.Background(), archive, dst,
		decompress.NewExtractOptions(decompress.WithMap(func(e decompress.EntryInfo) string {
			if strings.HasSuffix(e.Path, "a.txt") {
				return filepath.Join(e.OutputDir, "renamed.txt")
			}
			return e.Path
		})))
	require.NoError(t, err)
	require.Contains(t, res.Files, filepath.Join(dst, "renamed.txt"))

	// written only at the mapped path, never the original
	require.FileExists(t, filepath.Join(dst, "renamed.txt"))
	require.NoFileExists(t, filepath.Join(dst, "root", "a.txt"))
}

func TestDecompressRejectsTraversal(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"parent traversal", "../evil.txt"},
		{"nested traversal", "root/../../evil.txt"},
		{"absolute path", "/tmp/evil.txt"},
		{"backslash traversal", `..\evil.txt`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := packTar(t, []archiveContent{
				{Name: tc.entry, Content: []byte("evil"), Mode: 0644, Filetype: tar.TypeReg},
			})
			archive := writeArchive(t, "evil.tar", content)
			dst := t.TempDir()

			_, err := decompress.Decompress(context.Background(), archive, dst, nil)
			require.ErrorIs(t, err, decompress.ErrPathNotRelative)
			require.NoFileExists(t, filepath.Join(dst, "evil.txt"))
			require.NoFileExists(t, filepath.Join(filepath.Dir(dst), "evil.txt"))
		})
	}
}

func TestDecompressUnsupportedEntryAborts(t *testing.T) {
	content := packTar(t, []archiveContent{
		{Name: "dev/null", Mode: 0644, Filetype: tar.TypeChar},
		{Name: "a.txt", Content: []byte("hello"), Mode: 0644, Filetype: tar.TypeReg},
	})
	archive := writeArchive(t, "device.tar", content)
	dst := t.TempDir()

	_, err := decompress.Decompress(context.Background(), archive, dst, nil)
	require.ErrorIs(t, err, decompress.ErrUnsupportedEntry)
	require.NoFileExists(t, filepath.Join(dst, "a.txt"))
}

func TestDecompressSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	content := packTar(t, []archiveContent{
		{Name: "a.txt", Content: []byte("hello"), Mode: 0644, Filetype: tar.TypeReg},
		{Name: "link", Linktarget: "a.txt", Mode: 0777, Filetype: tar.TypeSymlink},
	})
	archive := writeArchive(t, "link.tar", content)
	dst := t.TempDir()

	res, err := decompress.Decompress(context.Background(), archive, dst, nil)
	require.NoError(t, err)
	// symlinks are not part of the written-files result
	require.Equal(t, []string{filepath.Join(dst, "a.txt")}, res.Files)

	target, err := os.Readlink(filepath.Join(dst, "link"))
	require.NoError(t, err)
	require.Equal(t, "a.txt", target)

	data, err := os.ReadFile(filepath.Join(dst, "link"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestDecompressNormalizesModes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no unix permission bits on windows")
	}
	content := packTar(t, []archiveContent{
		{Name: "script.sh", Content: []byte("#!/bin/sh\n"), Mode: 0700, Filetype: tar.TypeReg},
		{Name: "data.txt", Content: []byte("x"), Mode: 0600, Filetype: tar.TypeReg},
	})
	archive := writeArchive(t, "modes.tar", content)
	dst := t.TempDir()

	_, err := decompress.Decompress(context.Background(), archive, dst, nil)
	require.NoError(t, err)

	script, err := os.Stat(filepath.Join(dst, "script.sh"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0755), script.Mode().Perm())

	data, err := os.Stat(filepath.Join(dst, "data.txt"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0644), data.Mode().Perm())
}

func TestDecompressCreatesOutputDir(t *testing.T) {
	archive := writeArchive(t, "inner.tar", innerTar(t))
	dst := filepath.Join(t.TempDir(), "deep", "nested", "out")

	_, err := decompress.Decompress(context.Background(), archive, dst, nil)
	require.NoError(t, err)
	require.DirExists(t, dst)
}

func TestDecompressCanceledContext(t *testing.T) {
	archive := writeArchive(t, "inner.tar", innerTar(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := decompress.Decompress(ctx, archive, t.TempDir(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestListHasNoSideEffects(t *testing.T) {
	archive := writeArchive(t, "inner.tar", innerTar(t))
	dst := t.TempDir()

	listing, err := decompress.List(context.Background(), archive, nil)
	require.NoError(t, err)
	require.Equal(t, "tarball", listing.ID)
	require.Equal(t, []string{"root/", "root/a.txt", "root/sub/", "root/sub/b.txt"}, listing.Entries)

	// nothing was written
	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	require.Empty(t, entries)
}
