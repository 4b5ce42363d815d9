// Package decompress extracts or lists the contents of compressed and
// archived files (zip, tar, tar.gz, tar.xz, tar.bz2, tar.zst, ar, rar, 7z
// and bare gzip/bzip2/xz/zstd/lz4/brotli/snappy streams) into a target
// directory. The archive format is auto-detected from the file name or,
// optionally, from the file content, so callers never declare it.
//
// Extraction is safe by construction: every in-archive path is parsed into a
// RelPath, a validated sequence of relative path segments, and output paths
// are only ever built by joining those segments onto the output directory.
// Absolute paths, drive prefixes and ".." segments in archive entries are
// rejected before anything touches the filesystem.
//
//	res, err := decompress.Decompress(ctx, "bundle.tar.gz", "out",
//		decompress.NewExtractOptions(decompress.WithStrip(1)))
//
// A Registry holds an ordered list of format adapters. The default registry
// covers all supported formats; callers needing nonstandard extensions or a
// reduced format set build their own with NewRegistry, which replaces the
// default set entirely.
package decompress
