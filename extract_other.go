//go:build !unix

package decompress

import "io/fs"

// applyEntryMode is a no-op on platforms without Unix permission bits.
func applyEntryMode(path string, mode fs.FileMode) error {
	return nil
}
