package decompress

import "errors"

var (
	// ErrMissingCompressor is returned when no registered decompressor
	// matches the archive, either by file name or by sniffed content.
	ErrMissingCompressor = errors.New("no decompressor matches the archive")

	// ErrPathNotRelative is returned when an in-archive path contains a
	// root or drive component, or a ".." segment. A single unsafe entry
	// invalidates trust in the whole archive, so the extraction aborts.
	ErrPathNotRelative = errors.New("archive path is not relative")

	// ErrPathNotUTF8 is returned when an in-archive path is not valid UTF-8.
	ErrPathNotUTF8 = errors.New("archive path is not valid utf-8")

	// ErrUnsupportedEntry is returned when an archive contains an entry
	// that is neither a regular file, a directory nor a symlink (device
	// nodes, hard links, fifos). Such entries abort the extraction rather
	// than being skipped, since skipping would report an incomplete
	// extraction as success.
	ErrUnsupportedEntry = errors.New("unsupported entry type in archive")
)
