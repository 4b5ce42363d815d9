package decompress

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// archiveWalker is an interface that represents a file walker in an archive.
// Next returns io.EOF when the archive is exhausted.
type archiveWalker interface {
	Type() string
	Next() (archiveEntry, error)
}

// archiveEntry is an interface that represents a file in an archive
type archiveEntry interface {
	Name() string
	Mode() fs.FileMode
	Linkname() string
	IsRegular() bool
	IsDir() bool
	IsSymlink() bool
	Open() (io.ReadCloser, error)
}

// extractEntries walks src entry by entry and writes the surviving entries
// below dst. It returns the ordered list of written file paths; directories
// are created lazily and never recorded.
func extractEntries(ctx context.Context, src archiveWalker, dst string, opts *ExtractOptions) ([]string, error) {
	if _, err := os.Stat(dst); os.IsNotExist(err) {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return nil, fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	outputDir, err := filepath.Abs(dst)
	if err != nil {
		return nil, fmt.Errorf("cannot absolutize output directory: %w", err)
	}

	opts.Logger().Info("start extraction", "type", src.Type(), "dst", dst)
	var files []string

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ae, err := src.Next()
		switch {
		case err == io.EOF:
			return files, nil
		case err != nil:
			return nil, fmt.Errorf("cannot read archive entry: %w", err)
		case ae == nil:
			continue
		}

		var rp *RelPath
		switch {
		case ae.IsDir():
			rp, err = NewDirRelPath(ae.Name())
		case ae.IsRegular(), ae.IsSymlink():
			rp, err = NewFileRelPath(ae.Name())
		default:
			return nil, fmt.Errorf("%w: %s (mode %s)", ErrUnsupportedEntry, ae.Name(), ae.Mode())
		}
		if err != nil {
			return nil, err
		}

		rp = rp.Strip(opts.Strip())
		if len(rp.Parts()) == 0 {
			// the entry was an enclosing folder consumed by stripping
			opts.Logger().Debug("skipping stripped entry", "name", ae.Name())
			continue
		}

		info := EntryInfo{RelPath: rp, Path: rp.JoinOnto(outputDir), OutputDir: outputDir}
		if ae.IsDir() || ae.IsRegular() {
			if !opts.Filter()(info) {
				opts.Logger().Debug("skipping filtered entry", "name", ae.Name())
				continue
			}
		}
		outPath := opts.Map()(info)

		switch {
		case ae.IsDir():
			// directories materialize through the files below them

		case ae.IsRegular():
			opts.Logger().Debug("extract file", "name", ae.Name(), "path", outPath)
			if err := writeEntryFile(ae, outPath); err != nil {
				return nil, err
			}
			files = append(files, outPath)

		case ae.IsSymlink():
			opts.Logger().Debug("extract symlink", "name", ae.Name(), "target", ae.Linkname())
			if err := writeEntrySymlink(ae.Linkname(), outPath); err != nil {
				return nil, err
			}
		}
	}
}

// listEntries collects the raw in-archive entry names in archive order
// without touching the filesystem.
func listEntries(src archiveWalker) ([]string, error) {
	var entries []string
	for {
		ae, err := src.Next()
		switch {
		case err == io.EOF:
			return entries, nil
		case err != nil:
			return nil, fmt.Errorf("cannot read archive entry: %w", err)
		case ae == nil:
			continue
		}
		entries = append(entries, ae.Name())
	}
}

// writeEntryFile copies the entry body to path, creating parent directories
// as needed, and normalizes the archive-stored permission bits.
func writeEntryFile(ae archiveEntry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create parent directory: %w", err)
	}

	in, err := ae.Open()
	if err != nil {
		return fmt.Errorf("cannot open archive entry %s: %w", ae.Name(), err)
	}
	defer in.Close()

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("cannot write file %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cannot close file %s: %w", path, err)
	}

	return applyEntryMode(path, ae.Mode())
}

// writeEntrySymlink materializes a symlink at path with the target string
// exactly as the codec reported it.
func writeEntrySymlink(target, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create parent directory: %w", err)
	}

	// replace a leftover from a previous extraction
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("cannot overwrite symlink %s: %w", path, err)
		}
	}

	if err := os.Symlink(target, path); err != nil {
		return fmt.Errorf("cannot create symlink %s: %w", path, err)
	}
	return nil
}
