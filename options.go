package decompress

// EntryInfo describes one archive entry to the filter and map callbacks.
// Path and OutputDir are always absolute; RelPath is always relative.
type EntryInfo struct {
	// RelPath is the entry's validated in-archive path, after stripping.
	RelPath *RelPath

	// Path is the absolute output path the entry resolves to.
	Path string

	// OutputDir is the absolutized output root directory.
	OutputDir string
}

// FilterFunc decides whether an entry is extracted. It is called once per
// directory or regular file entry; returning false skips the entry with no
// side effects.
type FilterFunc func(EntryInfo) bool

// MapFunc computes the final output path of a surviving entry. The default
// is the identity mapping.
type MapFunc func(EntryInfo) string

// ExtractOptions configures one List or Decompress call. It is built once
// with NewExtractOptions, immutable afterwards, and shared across all entries
// of the archive.
type ExtractOptions struct {
	strip         int
	detectContent bool
	filter        FilterFunc
	mapFunc       MapFunc
	logger        logger
}

// ExtractOption modifies an ExtractOptions during construction.
type ExtractOption func(*ExtractOptions)

// NewExtractOptions builds an ExtractOptions from the default configuration
// adjusted by opts.
func NewExtractOptions(opts ...ExtractOption) *ExtractOptions {
	eo := &ExtractOptions{
		filter:  func(EntryInfo) bool { return true },
		mapFunc: func(e EntryInfo) string { return e.Path },
		logger:  defaultLogger,
	}
	for _, opt := range opts {
		opt(eo)
	}
	return eo
}

// WithStrip discards the first n leading path segments from every in-archive
// path before it is written. Entries fully consumed by stripping are skipped.
func WithStrip(n int) ExtractOption {
	return func(eo *ExtractOptions) {
		eo.strip = n
	}
}

// WithDetectContent selects the format by content sniffing (magic bytes)
// instead of the file name, falling back to extension matching when the
// sniff is inconclusive.
func WithDetectContent(detect bool) ExtractOption {
	return func(eo *ExtractOptions) {
		eo.detectContent = detect
	}
}

// WithFilter installs f as the per-entry predicate.
func WithFilter(f FilterFunc) ExtractOption {
	return func(eo *ExtractOptions) {
		if f != nil {
			eo.filter = f
		}
	}
}

// WithMap installs m as the output path transform.
func WithMap(m MapFunc) ExtractOption {
	return func(eo *ExtractOptions) {
		if m != nil {
			eo.mapFunc = m
		}
	}
}

// WithLogger sets the logger used during extraction. The default discards
// all output.
func WithLogger(l logger) ExtractOption {
	return func(eo *ExtractOptions) {
		if l != nil {
			eo.logger = l
		}
	}
}

// Strip returns the number of leading path segments to discard.
func (eo *ExtractOptions) Strip() int {
	return eo.strip
}

// DetectContent reports whether format selection prefers content sniffing.
func (eo *ExtractOptions) DetectContent() bool {
	return eo.detectContent
}

// Filter returns the entry predicate.
func (eo *ExtractOptions) Filter() FilterFunc {
	return eo.filter
}

// Map returns the output path transform.
func (eo *ExtractOptions) Map() MapFunc {
	return eo.mapFunc
}

// Logger returns the configured logger.
func (eo *ExtractOptions) Logger() logger {
	return eo.logger
}
