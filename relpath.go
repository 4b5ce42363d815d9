package decompress

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// RelPathKind classifies a RelPath as a file or a directory.
type RelPathKind int

const (
	// RelPathFile marks a path that names a regular file or symlink.
	RelPathFile RelPathKind = iota

	// RelPathDirectory marks a path that names a directory.
	RelPathDirectory
)

// RelPath is a validated archive-internal path: an ordered sequence of
// non-empty relative path segments. Both "/" and "\" are accepted as input
// separators, since archives written on one platform are routinely extracted
// on another. Absolute paths, drive prefixes and ".." segments are rejected
// at construction, which makes JoinOnto the only way a RelPath can become a
// filesystem path and keeps every output inside the chosen base directory.
type RelPath struct {
	kind  RelPathKind
	parts []string
	value string
}

// ParseRelPath parses path and guesses its kind: a trailing path separator
// means directory, anything else is a file.
func ParseRelPath(path string) (*RelPath, error) {
	kind := RelPathFile
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		kind = RelPathDirectory
	}
	return newRelPath(kind, path)
}

// NewFileRelPath parses path as a file path.
func NewFileRelPath(path string) (*RelPath, error) {
	return newRelPath(RelPathFile, path)
}

// NewDirRelPath parses path as a directory path.
func NewDirRelPath(path string) (*RelPath, error) {
	return newRelPath(RelPathDirectory, path)
}

func newRelPath(kind RelPathKind, path string) (*RelPath, error) {
	parts, err := splitParts(path)
	if err != nil {
		return nil, err
	}
	return &RelPath{kind: kind, parts: parts, value: strings.Join(parts, "/")}, nil
}

func splitParts(path string) ([]string, error) {
	if !utf8.ValidString(path) {
		return nil, fmt.Errorf("%w: %q", ErrPathNotUTF8, path)
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return nil, fmt.Errorf("%w: %q", ErrPathNotRelative, path)
	}
	if len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0]) {
		return nil, fmt.Errorf("%w: %q", ErrPathNotRelative, path)
	}

	var parts []string
	for _, part := range strings.FieldsFunc(path, isSeparator) {
		switch part {
		case ".":
			// no-op segment
		case "..":
			return nil, fmt.Errorf("%w: %q", ErrPathNotRelative, path)
		default:
			parts = append(parts, part)
		}
	}
	return parts, nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Kind returns the path kind.
func (p *RelPath) Kind() RelPathKind {
	return p.kind
}

// IsDir reports whether the path names a directory.
func (p *RelPath) IsDir() bool {
	return p.kind == RelPathDirectory
}

// IsFile reports whether the path names a file.
func (p *RelPath) IsFile() bool {
	return p.kind == RelPathFile
}

// Parts returns the path segments in order. The returned slice must not be
// modified.
func (p *RelPath) Parts() []string {
	return p.parts
}

// String returns the canonical forward-slash-joined form of the path.
func (p *RelPath) String() string {
	return p.value
}

// Strip returns a RelPath with the first n segments removed. Stripping more
// segments than the path has yields an empty RelPath, which extraction
// treats as "entry consumed by stripping" and skips.
func (p *RelPath) Strip(n int) *RelPath {
	if n <= 0 {
		return p
	}
	if n > len(p.parts) {
		n = len(p.parts)
	}
	parts := p.parts[n:]
	return &RelPath{kind: p.kind, parts: parts, value: strings.Join(parts, "/")}
}

// JoinOnto appends the path segments to base and returns the result in the
// platform's path syntax. This is the only sanctioned way to turn an archive
// path into a filesystem path.
func (p *RelPath) JoinOnto(base string) string {
	return filepath.Join(append([]string{base}, p.parts...)...)
}
